package scenario

import "github.com/kolkov/contracts/contract"

// ledger has a guarded setter whose invariant is local to the method.
type ledger struct {
	contract.Tracker
	balance int
}

func (l *ledger) SetBalance(reg *contract.Registry, bal int) {
	old := l.balance
	defer contract.Method(&l.Tracker, nil).Using(reg).
		Pre(func() bool { return bal >= 0 }, "bal >= 0").
		Inv(func() bool { return l.balance > 0 }, "balance > 0").
		Post(func() bool { return l.balance >= old }, "balance >= old_balance").
		Enter().Exit()
	l.balance = bal
}

func init() {
	register("mfun",
		"member-function preconditions, invariants and postconditions",
		func() []Step {
			return []Step{
				{
					Name: "Account{10}.SetBalance(20)",
					Want: Pass,
					Call: func(reg *contract.Registry) { (&ledger{balance: 10}).SetBalance(reg, 20) },
				},
				{
					Name: "Account{10}.SetBalance(-1)",
					Want: Violated(contract.Precondition),
					Call: func(reg *contract.Registry) { (&ledger{balance: 10}).SetBalance(reg, -1) },
				},
				{
					Name: "Account{10}.SetBalance(5)",
					Want: Violated(contract.Postcondition),
					Call: func(reg *contract.Registry) { (&ledger{balance: 10}).SetBalance(reg, 5) },
				},
				{
					Name: "Account{-10}.SetBalance(5)",
					Want: Violated(contract.Invariant),
					Call: func(reg *contract.Registry) { (&ledger{balance: -10}).SetBalance(reg, 5) },
				},
				{
					Name: "Account{0}.SetBalance(0)",
					Want: Violated(contract.Invariant),
					Call: func(reg *contract.Registry) { (&ledger{balance: 0}).SetBalance(reg, 0) },
				},
			}
		})
}
