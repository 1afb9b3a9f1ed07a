package wl

import "fmt"

type Callback struct {
	Listener CallbackListener

	proxy
}

func (c *Callback) String() string {
	return fmt.Sprintf("%v@%v", CallbackInterface, c.id)
}

// Then sets f to be called when the callback fires.
func (c *Callback) Then(f func(uint32)) {
	c.Listener = callbackListener(f)
}

type callbackListener func(uint32)

func (lis callbackListener) Done(data uint32) {
	lis(data)
}
