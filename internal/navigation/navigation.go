package navigation

import (
	"go.uber.org/zap"
)

const (
	SectionHome     = "hero"
	SectionFeatures = "features"
	SectionQuiz     = "quiz-section"
	SectionRoadmap  = "roadmap-section"
	SectionChat     = "chat-section"
)

// DefaultSections is the page layout in display order.
var DefaultSections = []string{
	SectionHome,
	SectionFeatures,
	SectionQuiz,
	SectionRoadmap,
	SectionChat,
}

// Host is the environment that actually shows or hides sections.
type Host interface {
	SetActive(section string, active bool)
	ScrollTop()
}

// Controller tracks which sections are visible and keeps the host in sync.
type Controller struct {
	order  []string
	active map[string]bool
	host   Host
	logger *zap.Logger
}

func New(sections []string, host Host, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}

	order := make([]string, 0, len(sections))
	active := make(map[string]bool, len(sections))
	for _, s := range sections {
		if _, ok := active[s]; ok || s == "" {
			continue
		}
		order = append(order, s)
		active[s] = false
	}

	return &Controller{
		order:  order,
		active: active,
		host:   host,
		logger: logger,
	}
}

// Show makes the named section the only visible one. The home section
// always brings the features section along. Unknown names are ignored.
func (c *Controller) Show(name string) bool {
	if _, ok := c.active[name]; !ok {
		c.logger.Debug("unknown section, ignoring", zap.String("section", name))
		return false
	}

	for _, s := range c.order {
		c.set(s, false)
	}

	c.set(name, true)

	if name == SectionHome {
		if _, ok := c.active[SectionFeatures]; ok {
			c.set(SectionFeatures, true)
		}
	}

	if c.host != nil {
		c.host.ScrollTop()
	}

	c.logger.Debug("showing section", zap.String("section", name), zap.Strings("active", c.Active()))

	return true
}

// Active returns the visible sections in page order.
func (c *Controller) Active() []string {
	res := make([]string, 0, 2)
	for _, s := range c.order {
		if c.active[s] {
			res = append(res, s)
		}
	}
	return res
}

func (c *Controller) IsActive(name string) bool {
	return c.active[name]
}

func (c *Controller) set(section string, active bool) {
	c.active[section] = active
	if c.host != nil {
		c.host.SetActive(section, active)
	}
}
