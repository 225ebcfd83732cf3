package scenario

import "github.com/kolkov/contracts/contract"

// savingsBase owns the interest rate. A derived type can change the rate and
// the base invariant must still catch it.
type savingsBase struct {
	contract.Tracker
	interestRate float64
}

var savingsBaseInvariant = contract.Class[*savingsBase]("base_account").
	Invariant(func(b *savingsBase) bool { return b.interestRate >= 0 }, "interest_rate >= 0")

func (b *savingsBase) open(reg *contract.Registry, rate float64) {
	defer contract.Ctor(&b.Tracker, savingsBaseInvariant.For(b)).Using(reg).Enter().Exit()
	b.interestRate = rate
}

// savings composes savingsBase. Both share the embedded tracker, as they
// are one instance.
type savings struct {
	savingsBase
	balance int
}

var savingsInvariant = contract.Derived[*savings]("account",
	contract.Inherit(savingsBaseInvariant, func(s *savings) *savingsBase { return &s.savingsBase }),
).Invariant(func(s *savings) bool { return s.balance > 0 }, "balance > 0")

func newSavings(reg *contract.Registry, bal int, rate float64) (s *savings) {
	s = &savings{balance: -1}
	s.savingsBase.open(reg, rate)
	defer contract.Ctor(&s.Tracker, savingsInvariant.For(s)).Using(reg).Enter().Exit()
	s.balance = bal
	return s
}

func newSavingsPanicking(reg *contract.Registry) (s *savings) {
	s = &savings{balance: -1}
	s.savingsBase.open(reg, 1)
	defer contract.Ctor(&s.Tracker, savingsInvariant.For(s)).Using(reg).Enter().Exit()
	panic(errNonContract{})
}

func (s *savings) guard(reg *contract.Registry) *contract.Scope {
	return contract.Method(&s.Tracker, savingsInvariant.For(s)).Using(reg)
}

func (s *savings) Balance(reg *contract.Registry) int {
	defer s.guard(reg).Enter().Exit()
	return s.balance
}

func (s *savings) SetBalance(reg *contract.Registry, bal int) {
	defer s.guard(reg).Enter().Exit()
	s.balance = bal
}

func (s *savings) InterestRate(reg *contract.Registry) float64 {
	defer s.guard(reg).Enter().Exit()
	return s.interestRate
}

func (s *savings) SetInterestRate(reg *contract.Registry, rate float64) {
	defer s.guard(reg).Enter().Exit()
	s.interestRate = rate
}

// Close re-checks the invariant on entry.
func (s *savings) Close(reg *contract.Registry) {
	defer contract.Dtor(&s.Tracker, savingsInvariant.For(s)).Using(reg).Enter().Exit()
	s.balance = -1
}

// Types without invariants of their own, composed below.
type (
	plainBase  struct{}
	plainBase2 struct{}
	trueBase   struct{}
)

var trueBaseInvariant = contract.Class[*trueBase]("base_with_invariant").
	Invariant(func(*trueBase) bool { return true }, "true")

// overPlainBase derives from a base that declares no invariant.
type overPlainBase struct {
	contract.Tracker
	plainBase
}

var overPlainBaseInvariant = contract.Derived[*overPlainBase]("derived_with_invariant",
	contract.Inherit[*overPlainBase, *plainBase](nil, func(d *overPlainBase) *plainBase { return &d.plainBase }),
).Invariant(func(*overPlainBase) bool { return true }, "true")

func newOverPlainBase(reg *contract.Registry) *overPlainBase {
	d := &overPlainBase{}
	defer contract.Ctor(&d.Tracker, overPlainBaseInvariant.For(d)).Using(reg).Enter().Exit()
	return d
}

// manyBases lists three bases: one derived, one with an invariant and one
// without.
type manyBases struct {
	overPlainBase
	trueBase
	plainBase2
}

var manyBasesInvariant = contract.Derived[*manyBases]("derived_with_many_bases",
	contract.Inherit(overPlainBaseInvariant, func(m *manyBases) *overPlainBase { return &m.overPlainBase }),
	contract.Inherit(trueBaseInvariant, func(m *manyBases) *trueBase { return &m.trueBase }),
	contract.Inherit[*manyBases, *plainBase2](nil, func(m *manyBases) *plainBase2 { return &m.plainBase2 }),
).Invariant(func(*manyBases) bool { return true }, "true")

func newManyBases(reg *contract.Registry) *manyBases {
	m := &manyBases{}
	defer contract.Ctor(&m.Tracker, manyBasesInvariant.For(m)).Using(reg).Enter().Exit()
	return m
}

func init() {
	register("derived",
		"base and derived class invariants in constructors",
		func() []Step {
			return []Step{
				{
					Name: "NewAccount(10, 0.05)",
					Want: Pass,
					Call: func(reg *contract.Registry) { newSavings(reg, 10, 0.05) },
				},
				{
					Name: "NewAccount(-2, 0.05)",
					Want: Violated(contract.Invariant),
					Call: func(reg *contract.Registry) { newSavings(reg, -2, 0.05) },
				},
				{
					Name: "NewAccount(10, -0.05)",
					Want: Violated(contract.Invariant),
					Call: func(reg *contract.Registry) { newSavings(reg, 10, -0.05) },
				},
				{
					Name: "NewAccount() with panicking body",
					Want: Panic,
					Call: func(reg *contract.Registry) { newSavingsPanicking(reg) },
				},
				{
					Name: "NewDerivedWithInvariant()",
					Want: Pass,
					Call: func(reg *contract.Registry) { newOverPlainBase(reg) },
				},
				{
					Name: "NewDerivedWithManyBases()",
					Want: Pass,
					Call: func(reg *contract.Registry) { newManyBases(reg) },
				},
			}
		})

	register("derived-method",
		"an instance whose derived invariant broke stays broken",
		func() []Step {
			var acc *savings
			return []Step{
				{
					Name: "acc := NewAccount(10, 0.05)",
					Want: Pass,
					Call: func(reg *contract.Registry) { acc = newSavings(reg, 10, 0.05) },
				},
				{
					Name: "acc.SetInterestRate(0.1)",
					Want: Pass,
					Call: func(reg *contract.Registry) { acc.SetInterestRate(reg, 0.1) },
				},
				{
					Name: "acc.SetInterestRate(-0.1)",
					Want: Violated(contract.Invariant),
					Call: func(reg *contract.Registry) { acc.SetInterestRate(reg, -0.1) },
				},
				{
					Name: "acc.InterestRate()",
					Want: Violated(contract.Invariant),
					Call: func(reg *contract.Registry) { acc.InterestRate(reg) },
				},
				{
					Name: "acc.SetInterestRate(0.07)",
					Want: Violated(contract.Invariant),
					Call: func(reg *contract.Registry) { acc.SetInterestRate(reg, 0.07) },
				},
				{
					Name: "acc.InterestRate()",
					Want: Violated(contract.Invariant),
					Call: func(reg *contract.Registry) { acc.InterestRate(reg) },
				},
				{
					Name: "acc.SetBalance(50)",
					Want: Violated(contract.Invariant),
					Call: func(reg *contract.Registry) { acc.SetBalance(reg, 50) },
				},
				{
					Name: "acc.Balance()",
					Want: Violated(contract.Invariant),
					Call: func(reg *contract.Registry) { acc.Balance(reg) },
				},
				{
					Name: "acc.Close()",
					Want: Violated(contract.Invariant),
					Call: func(reg *contract.Registry) { acc.Close(reg) },
				},
			}
		})
}
