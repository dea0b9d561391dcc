package agent

import (
	"fmt"
	"strings"
	"sync"

	toolhandler "github.com/w-h-a/assistant/tool_handler"
)

type ToolCatalog struct {
	tools map[string]toolhandler.ToolHandler
	specs map[string]toolhandler.ToolSpec
	order []string
	mtx   sync.RWMutex
}

func (c *ToolCatalog) Register(th toolhandler.ToolHandler) error {
	if th == nil {
		return fmt.Errorf("%w: tool is nil", ErrInvalidTool)
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	spec := th.Spec()
	key := strings.TrimSpace(spec.Name)
	if len(key) == 0 {
		return fmt.Errorf("%w: tool name is required", ErrInvalidTool)
	}

	if _, ok := c.tools[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, key)
	}

	c.tools[key] = th
	c.specs[key] = spec
	c.order = append(c.order, key)

	return nil
}

// ListSpecs returns the specs in registration order. The slice is a copy.
func (c *ToolCatalog) ListSpecs() []toolhandler.ToolSpec {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	specs := make([]toolhandler.ToolSpec, 0, len(c.specs))
	for _, key := range c.order {
		specs = append(specs, c.specs[key])
	}

	return specs
}

func (c *ToolCatalog) Get(name string) (toolhandler.ToolHandler, toolhandler.ToolSpec, error) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	key := strings.TrimSpace(name)
	th, ok := c.tools[key]
	if !ok {
		return nil, toolhandler.ToolSpec{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	return th, c.specs[key], nil
}

func (c *ToolCatalog) Len() int {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return len(c.order)
}

func NewToolCatalog(toolHandlers ...toolhandler.ToolHandler) (*ToolCatalog, error) {
	catalog := &ToolCatalog{
		tools: map[string]toolhandler.ToolHandler{},
		specs: map[string]toolhandler.ToolSpec{},
		order: []string{},
		mtx:   sync.RWMutex{},
	}

	for _, th := range toolHandlers {
		if err := catalog.Register(th); err != nil {
			return nil, err
		}
	}

	return catalog, nil
}
