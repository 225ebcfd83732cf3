package scenario

import "github.com/kolkov/contracts/contract"

// openAccount has a guarded constructor. Its balance starts below zero so
// the postcondition only holds once the body assigned it.
type openAccount struct {
	balance int
}

func newOpenAccount(reg *contract.Registry, bal int, skipPre bool) (a *openAccount) {
	a = &openAccount{balance: -1}
	defer contract.Ctor(nil, nil).Using(reg).
		Pre(func() bool { return bal > 0 || skipPre }, "bal > 0 || skip_pre").
		Post(func() bool { return a.balance > 0 }, "balance > 0").
		Enter().Exit()
	a.balance = bal
	return a
}

func init() {
	register("ctor",
		"constructor preconditions and postconditions",
		func() []Step {
			return []Step{
				{
					Name: "NewAccount(10)",
					Want: Pass,
					Call: func(reg *contract.Registry) { newOpenAccount(reg, 10, false) },
				},
				{
					Name: "NewAccount(0)",
					Want: Violated(contract.Precondition),
					Call: func(reg *contract.Registry) { newOpenAccount(reg, 0, false) },
				},
				{
					Name: "NewAccount(0, skip precondition)",
					Want: Violated(contract.Postcondition),
					Call: func(reg *contract.Registry) { newOpenAccount(reg, 0, true) },
				},
			}
		})
}
