// Package display owns the process-wide banner queue. It shows one banner at
// a time on a banner.Host, queues the rest in FIFO order, plays sounds and
// reports banners leaving the screen.
package display
