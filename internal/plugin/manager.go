package plugin

import (
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/sirupsen/logrus"
)

// Manager dispatches lifecycle hooks to plugins in registration order and
// tracks the charts that are alive.
type Manager struct {
	plugins []Plugin
	charts  *Registry[*chart.Model]
	order   []string
	log     logrus.FieldLogger
}

func NewManager(log logrus.FieldLogger) *Manager {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Manager{
		charts: NewRegistry[*chart.Model](),
		log:    log,
	}
}

// Use appends plugins. Draw hooks run in the order plugins were added.
func (m *Manager) Use(plugins ...Plugin) {
	m.plugins = append(m.plugins, plugins...)
}

// Plugin returns the plugin registered with id.
func (m *Manager) Plugin(id string) (Plugin, bool) {
	for _, p := range m.plugins {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// Register makes a chart known to the manager and runs OnBeforeUpdate.
func (m *Manager) Register(c *chart.Model) {
	if !m.charts.Has(c.ID()) {
		m.order = append(m.order, c.ID())
	}
	m.charts.Put(c.ID(), c)
	m.log.WithField("chart", c.ID()).Debug("chart registered")
	m.Update(c)
}

func (m *Manager) Chart(id string) (*chart.Model, bool) {
	return m.charts.Get(id)
}

// Charts returns live charts in registration order.
func (m *Manager) Charts() []*chart.Model {
	result := make([]*chart.Model, 0, len(m.order))
	for _, id := range m.order {
		if c, ok := m.charts.Get(id); ok {
			result = append(result, c)
		}
	}
	return result
}

func (m *Manager) Update(c *chart.Model) {
	for _, p := range m.plugins {
		p.OnBeforeUpdate(c)
	}
}

func (m *Manager) Draw(c *chart.Model, lc *linechart.Model) {
	for _, p := range m.plugins {
		p.OnAfterDraw(c, lc)
	}
}

// Dispatch delivers ev to every plugin and reports whether any asked for a redraw.
func (m *Manager) Dispatch(c *chart.Model, ev Event) bool {
	changed := false
	for _, p := range m.plugins {
		if p.OnAfterEvent(c, ev) {
			m.log.WithFields(logrus.Fields{"chart": c.ID(), "plugin": p.ID(), "event": ev.Kind}).Trace("redraw requested")
			changed = true
		}
	}
	return changed
}

// Destroy runs OnBeforeDestroy and forgets the chart.
func (m *Manager) Destroy(c *chart.Model) {
	for _, p := range m.plugins {
		p.OnBeforeDestroy(c)
	}
	m.charts.Remove(c.ID())
	for i, id := range m.order {
		if id == c.ID() {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.log.WithField("chart", c.ID()).Debug("chart destroyed")
}

// DestroyAll destroys every live chart.
func (m *Manager) DestroyAll() {
	for _, c := range m.Charts() {
		m.Destroy(c)
	}
}
