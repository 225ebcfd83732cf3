package scenario

import "github.com/kolkov/contracts/contract"

// closingAccount has a guarded Close. Closing drains the balance by 100 and
// must leave it negative.
type closingAccount struct {
	balance int
}

func (a *closingAccount) Close(reg *contract.Registry) {
	defer contract.Dtor(nil, nil).Using(reg).
		Pre(func() bool { return a.balance > 0 }, "balance > 0").
		Post(func() bool { return a.balance < 0 }, "balance < 0").
		Enter().Exit()
	a.balance -= 100
}

func init() {
	register("dtor",
		"destructor (Close) preconditions and postconditions",
		func() []Step {
			return []Step{
				{
					Name: "Account{10}.Close()",
					Want: Pass,
					Call: func(reg *contract.Registry) { (&closingAccount{balance: 10}).Close(reg) },
				},
				{
					Name: "Account{0}.Close()",
					Want: Violated(contract.Precondition),
					Call: func(reg *contract.Registry) { (&closingAccount{balance: 0}).Close(reg) },
				},
				{
					Name: "Account{200}.Close()",
					Want: Violated(contract.Postcondition),
					Call: func(reg *contract.Registry) { (&closingAccount{balance: 200}).Close(reg) },
				},
			}
		})
}
