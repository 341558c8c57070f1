package synth

import(
  "sync/atomic"
)

type captureNode struct {
  capture Capture
  next *captureNode
}

// captureQueue moves finished captures from the audio callback to export
// without ever blocking the callback or dropping a capture. Push is a single
// compare-and-swap onto a lock-free stack; a forwarder goroutine drains the
// stack into an unbounded slice and delivers captures in push order.
type captureQueue struct {
  head atomic.Pointer[captureNode]
  closed atomic.Bool
  wake chan struct{}
  out chan Capture
  // called by the forwarder every time it wakes, off the audio thread
  refill func()
}

func newCaptureQueue(refill func()) *captureQueue {
  q := &captureQueue{
    wake: make(chan struct{}, 1),
    out: make(chan Capture),
    refill: refill,
  }

  go q.forward()
  return q
}

func (q *captureQueue) Push(capture Capture) {
  node := &captureNode{capture: capture}
  for {
    old := q.head.Load()
    node.next = old
    if q.head.CompareAndSwap(old, node) {
      break
    }
  }
  q.signal()
}

// Close lets the forwarder deliver what is left and then close Out. Push
// must not be called after Close.
func (q *captureQueue) Close() {
  q.closed.Store(true)
  q.signal()
}

func (q *captureQueue) Out() <-chan Capture {
  return q.out
}

func (q *captureQueue) signal() {
  select {
  case q.wake <- struct{}{}:
  default:
  }
}

// take appends everything pushed so far to pending, oldest first.
func (q *captureQueue) take(pending []Capture) []Capture {
  start := len(pending)
  for node := q.head.Swap(nil); node != nil; node = node.next {
    pending = append(pending, node.capture)
  }

  // the stack hands nodes back newest first
  for i, j := start, len(pending) - 1; i < j; i, j = i + 1, j - 1 {
    pending[i], pending[j] = pending[j], pending[i]
  }
  return pending
}

func (q *captureQueue) forward() {
  defer close(q.out)

  var pending []Capture
  for {
    closed := q.closed.Load()
    pending = q.take(pending)
    if q.refill != nil {
      q.refill()
    }

    if len(pending) == 0 {
      if closed {
        return
      }
      <-q.wake
      continue
    }

    select {
    case q.out <- pending[0]:
      pending[0] = Capture{}
      pending = pending[1:]
    case <-q.wake:
    }
  }
}
