package facets

import (
	"sync"
	"time"

	"github.com/matst80/slask-facets/pkg/common"
	"github.com/matst80/slask-facets/pkg/query"
)

const PriceRangeDebounce = 500 * time.Millisecond

// Navigator receives the href the price range settled on.
type Navigator func(href string)

// PriceRangeController holds the two price text fields of the price range
// filter. Edits only update local state; once the fields have been left
// alone for the debounce delay a single navigation is issued.
type PriceRangeController struct {
	mu       sync.Mutex
	params   query.Params
	basePath string
	min      *float64
	max      *float64
	minText  string
	maxText  string
	navigate Navigator
	debounce *common.Debouncer
}

func NewPriceRangeController(params query.Params, basePath string, delay time.Duration, navigate Navigator) *PriceRangeController {
	if delay <= 0 {
		delay = PriceRangeDebounce
	}
	min, max := PriceBounds(params)
	return &PriceRangeController{
		params:   params.Clone(),
		basePath: basePath,
		min:      min,
		max:      max,
		minText:  initialText(min),
		maxText:  initialText(max),
		navigate: navigate,
		debounce: common.NewDebouncer(delay),
	}
}

func initialText(bound *float64) string {
	if bound == nil || *bound == 0 {
		return ""
	}
	return FormatPrice(*bound)
}

func (c *PriceRangeController) SetMinText(text string) {
	c.mu.Lock()
	c.minText = text
	c.mu.Unlock()
	c.debounce.Trigger(c.settle)
}

func (c *PriceRangeController) SetMaxText(text string) {
	c.mu.Lock()
	c.maxText = text
	c.mu.Unlock()
	c.debounce.Trigger(c.settle)
}

// Text returns the current field contents.
func (c *PriceRangeController) Text() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minText, c.maxText
}

// Stop cancels a pending navigation, for when the filter goes away.
func (c *PriceRangeController) Stop() {
	c.debounce.Stop()
}

func unchanged(text string, bound *float64) bool {
	return text == "" || (bound != nil && text == FormatPrice(*bound))
}

func (c *PriceRangeController) settle() {
	c.mu.Lock()
	minText, maxText := c.minText, c.maxText
	c.mu.Unlock()

	if unchanged(minText, c.min) && unchanged(maxText, c.max) {
		return
	}
	price := PriceFacet{}
	if minText != "" {
		price.Min = Amount(minText)
	}
	if maxText != "" {
		price.Max = Amount(maxText)
	}
	next := ApplyInput(PriceRange, Input{price}, c.params)
	if c.navigate != nil {
		c.navigate(Href(c.basePath, next))
	}
}
