package cyw43439

import "time"

// idleWait is how long the pump sleeps when nothing moved or a poll failed.
const idleWait = 5 * time.Millisecond

// pump calls step until done is closed, sleeping after idle or failed
// rounds.
func pump(done <-chan struct{}, step func() (send, recv int, err error), sleep func(time.Duration)) {
	for {
		select {
		case <-done:
			return
		default:
		}
		send, recv, err := step()
		if err != nil || (send == 0 && recv == 0) {
			sleep(idleWait)
		}
	}
}
