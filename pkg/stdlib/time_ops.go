package stdlib

import (
	"time"

	"github.com/lunalang/luna/pkg/interp"
)

func (l *Lib) timeNatives() []native {
	return []native{
		{"clock", l.timeClock},
	}
}

// clock() returns monotonic seconds since the library was registered.
// Scripts only ever difference two readings, so the baseline is arbitrary.
func (l *Lib) timeClock(args []interp.Value) interp.Value {
	return interp.FloatVal(time.Since(l.epoch).Seconds())
}
