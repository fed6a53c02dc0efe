package blocklist

import "sync"

// Notice is one transient message
type Notice struct {
	Error   bool
	Message string
}

// Recorder is a Notifier that keeps every notice in memory
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Success(message string) {
	r.add(Notice{Message: message})
}

func (r *Recorder) Error(message string) {
	r.add(Notice{Error: true, Message: message})
}

// Notices returns the notices so far, oldest first
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the newest notice
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

func (r *Recorder) add(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}
