package student

import "time"

// SetNowFunc replaces the clock used to derive ages; the returned func restores it.
func SetNowFunc(f func() time.Time) (restore func()) {
	orig := nowFunc
	nowFunc = f
	return func() { nowFunc = orig }
}
