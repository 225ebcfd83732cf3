package scenario

import "github.com/kolkov/contracts/contract"

func loopInRange(reg *contract.Registry) {
	for i := 0; i != 10; i++ {
		contract.Loop().Using(reg).
			Inv(func() bool { return i >= 0 }, "i >= 0").
			Inv(func() bool { return i < 10 }, "i < 10").
			Enter()
	}
}

func loopEven(reg *contract.Registry) {
	for i := 0; i != 10; i++ {
		contract.Loop().Using(reg).
			Inv(func() bool { return i&1 == 0 }, "i is even").
			Enter()
	}
}

// loopPrePost registers conditions a loop scope never evaluates.
func loopPrePost(reg *contract.Registry) {
	for i := 0; i != 10; i++ {
		contract.Loop().Using(reg).
			Pre(func() bool { return i&1 == 0 }, "i is even").
			Post(func() bool { return i&1 != 0 }, "i is odd").
			Enter()
	}
}

func init() {
	register("loop",
		"loop invariants checked once per iteration",
		func() []Step {
			return []Step{
				{Name: "for i in 0..9: i >= 0, i < 10", Want: Pass, Call: loopInRange},
				{Name: "for i in 0..9: i is even", Want: Violated(contract.Invariant), Call: loopEven},
				{Name: "for i in 0..9: pre/post ignored", Want: Pass, Call: loopPrePost},
			}
		})
}
