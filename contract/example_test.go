package contract_test

import (
	"errors"
	"fmt"

	"github.com/kolkov/contracts/contract"
)

type Account struct {
	contract.Tracker
	balance int
}

var accountInvariant = contract.Class[*Account]("account").
	Invariant(func(a *Account) bool { return a.balance > 0 }, "balance > 0")

func NewAccount(bal int) (a *Account) {
	a = &Account{}
	defer contract.Ctor(&a.Tracker, accountInvariant.For(a)).
		Pre(func() bool { return bal > 0 }, "bal > 0").
		Enter().Exit()
	a.balance = bal
	return a
}

func (a *Account) Deposit(n int) {
	defer contract.Method(&a.Tracker, accountInvariant.For(a)).
		Pre(func() bool { return n > 0 }, "n > 0").
		Enter().Exit()
	a.balance += n
}

var errInsufficient = errors.New("insufficient funds")

func (a *Account) Withdraw(n int, force bool) (err error) {
	old := a.balance
	defer contract.Method(&a.Tracker, accountInvariant.For(a)).
		Post(func() bool { return a.balance == old-n }, "balance == old - n").
		Enter().ExitErr(&err)
	if n > a.balance && !force {
		return errInsufficient
	}
	a.balance -= n
	return nil
}

// Example demonstrates a guarded type with a constructor and a method.
func Example() {
	tok := contract.Install(contract.Raise{})
	defer tok.Release()

	a := NewAccount(10)
	a.Deposit(5)
	fmt.Println(a.balance, a.State())

	err := contract.Catch(func() { a.Deposit(-1) })
	fmt.Println(err.Summary())

	// Output:
	// 15 sound
	// precondition failed in member-function: n > 0
}

// Example_sticky shows that an instance whose invariant failed stays broken.
func Example_sticky() {
	tok := contract.Install(contract.Raise{})
	defer tok.Release()

	a := NewAccount(10)

	err := contract.Catch(func() { _ = a.Withdraw(10, true) })
	fmt.Println(err.Summary(), err.Sticky)

	a.balance = 100
	err = contract.Catch(func() { a.Deposit(1) })
	fmt.Println(err.Summary(), err.Sticky)
	fmt.Println(a.State())

	// Output:
	// invariant failed in member-function: balance > 0 false
	// invariant failed in member-function: balance > 0 true
	// broken
}

// Example_errorExit shows that a returned error skips exit checks.
func Example_errorExit() {
	tok := contract.Install(contract.Raise{})
	defer tok.Release()

	a := NewAccount(10)
	err := a.Withdraw(50, false)
	fmt.Println(err, a.State())

	// Output:
	// insufficient funds sound
}

type Savings struct {
	Account
	rate int
}

var savingsInvariant = contract.Derived[*Savings]("savings",
	contract.Inherit(accountInvariant, func(s *Savings) *Account { return &s.Account }),
).Invariant(func(s *Savings) bool { return s.rate >= 0 }, "rate >= 0")

// Example_derived composes a base invariant into a derived one.
func Example_derived() {
	tok := contract.Install(contract.Raise{})
	defer tok.Release()

	fmt.Println(savingsInvariant.Check(&Savings{Account: Account{balance: 1}, rate: 2}) == nil)

	f := savingsInvariant.Check(&Savings{Account: Account{balance: 0}, rate: -1})
	fmt.Println(f.Spec, f.Label)

	f = savingsInvariant.Check(&Savings{Account: Account{balance: 1}, rate: -1})
	fmt.Println(f.Spec, f.Label)

	// Output:
	// true
	// account balance > 0
	// savings rate >= 0
}

// Example_loop checks a loop invariant on every iteration.
func Example_loop() {
	tok := contract.Install(contract.Raise{})
	defer tok.Release()

	sum := 0
	err := contract.Catch(func() {
		for i := 0; i < 10; i++ {
			contract.Loop().Inv(func() bool { return sum < 10 }, "sum < 10").Enter()
			sum += i
		}
	})
	fmt.Println(sum, err.Summary())

	// Output:
	// 10 invariant failed in loop-invariant: sum < 10
}

// ExampleCompatible checks a required runtime version.
func ExampleCompatible() {
	fmt.Println(contract.Compatible("v0.1.0"))
	fmt.Println(contract.Compatible("0.0.3"))
	fmt.Println(contract.Compatible("v0.2.0"))
	fmt.Println(contract.Compatible("v1.0.0"))

	// Output:
	// true
	// true
	// false
	// false
}
