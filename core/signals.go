package core

import "log"

type Signal any

type SaveSignal struct {
	path  string
	lines int
}

func (s SaveSignal) Value() (path string, lines int) {
	path = s.path
	lines = s.lines

	return path, lines
}

type QuitSignal struct{}

type MessageSignal struct {
	value string
}

func (m MessageSignal) Value() string {
	return m.value
}

type ErrorSignal struct {
	err error
}

func (e ErrorSignal) Value() error {
	return e.err
}

type BufferSwitchSignal struct {
	index int
	title string
}

func (b BufferSwitchSignal) Value() (index int, title string) {
	index = b.index
	title = b.title

	return index, title
}

func (s *Session) DispatchSignal(signal Signal) {
	select {
	case s.updateSignal <- signal:
	default: // Ignore if the channel is full
	}
}

func (s *Session) DispatchMessage(value string) {
	select {
	case s.updateSignal <- MessageSignal{value}:
	default:
		log.Println("Channel is full, unable to send message signal")
	}
}

func (s *Session) DispatchError(err error) {
	select {
	case s.updateSignal <- ErrorSignal{err}:
	default:
		log.Println("Channel is full, unable to send error signal")
	}
}

// UpdateSignalChan exposes the signal stream for UI consumers.
func (s *Session) UpdateSignalChan() <-chan Signal {
	return s.updateSignal
}
