package stylesink

import "sync"

// Memory keeps the applied CSS in memory.
type Memory struct {
	css     string
	applied bool
	applies int
	mutex   sync.RWMutex
}

// NewMemory creates an empty memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

// Apply stores css.
func (m *Memory) Apply(css string) error {
	if err := checkCSS(css); err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.css = css
	m.applied = true
	m.applies++

	return nil
}

// Remove clears the stored CSS.
func (m *Memory) Remove() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.css = ""
	m.applied = false

	return nil
}

// CSS returns the applied CSS and whether any is applied.
func (m *Memory) CSS() (string, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.css, m.applied
}

// Applies returns how many times Apply succeeded.
func (m *Memory) Applies() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.applies
}
