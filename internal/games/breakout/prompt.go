package breakout

// PendingPrompt is a RestartPrompt for event-loop hosts: it keeps the
// question open until the host reads the player's answer and calls Answer.
type PendingPrompt struct {
	open   bool
	points int
	reply  func(yes bool)
}

// AskRestart implements RestartPrompt.
func (p *PendingPrompt) AskRestart(points int, reply func(yes bool)) {
	p.open = true
	p.points = points
	p.reply = reply
}

// Open reports whether a question is waiting for an answer.
func (p *PendingPrompt) Open() bool { return p.open }

// Points returns the score of the game the question is about.
func (p *PendingPrompt) Points() int { return p.points }

// Answer closes the question and passes the answer on.
func (p *PendingPrompt) Answer(yes bool) {
	if !p.open {
		return
	}
	reply := p.reply
	p.open = false
	p.reply = nil
	if reply != nil {
		reply(yes)
	}
}
