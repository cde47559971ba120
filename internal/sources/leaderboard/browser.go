package leaderboard

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/agentstation/freerank/pkg/constants"
	"github.com/agentstation/freerank/pkg/errors"
	"github.com/agentstation/freerank/pkg/logging"
)

// Browser renders a page and returns its HTML after scripts have run.
type Browser interface {
	PageHTML(ctx context.Context, url string) (string, error)
}

// expandColumnsPattern matches the button that reveals the full metric set.
const expandColumnsPattern = "/^\\s*Expand Columns\\s*$/"

// RodBrowser drives a headless Chromium through go-rod.
type RodBrowser struct {
	// Bin is the browser binary. Empty lets rod find or download one.
	Bin string
	// Timeout bounds the whole page load. Zero uses constants.ScrapeTimeout.
	Timeout time.Duration
	// ExpandDelay is how long to wait after expanding the columns.
	ExpandDelay time.Duration
}

// NewRodBrowser returns a RodBrowser with default timings.
func NewRodBrowser(bin string) *RodBrowser {
	return &RodBrowser{
		Bin:         bin,
		Timeout:     constants.ScrapeTimeout,
		ExpandDelay: constants.ExpandColumnsDelay,
	}
}

// PageHTML implements Browser.
func (b *RodBrowser) PageHTML(ctx context.Context, url string) (string, error) {
	logger := logging.FromContext(ctx)

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = constants.ScrapeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	launch := launcher.New().Headless(true).Context(ctx)
	if b.Bin != "" {
		launch = launch.Bin(b.Bin)
	}
	defer launch.Cleanup()

	controlURL, err := launch.Launch()
	if err != nil {
		return "", errors.NewScrapeError("launch", url, err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", errors.NewScrapeError("connect", url, err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			logger.Debug().Err(err).Msg("Failed to close browser")
		}
	}()

	logger.Debug().Str("url", url).Msg("Opening leaderboard page")
	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", errors.NewScrapeError("navigate", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", errors.NewScrapeError("load", url, err)
	}
	if _, err := page.Element("table"); err != nil {
		return "", errors.NewScrapeError("wait for table", url, err)
	}

	if err := b.expandColumns(ctx, page); err != nil {
		return "", errors.NewScrapeError("expand columns", url, err)
	}

	content, err := page.HTML()
	if err != nil {
		return "", errors.NewScrapeError("read", url, err)
	}
	return content, nil
}

// expandColumns clicks the "Expand Columns" button when the page shows one.
func (b *RodBrowser) expandColumns(ctx context.Context, page *rod.Page) error {
	has, button, err := page.HasR("button", expandColumnsPattern)
	if err != nil || !has {
		return err
	}
	visible, err := button.Visible()
	if err != nil || !visible {
		return err
	}

	logging.FromContext(ctx).Debug().Msg("Expanding leaderboard columns")
	if err := button.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return err
	}

	select {
	case <-time.After(b.ExpandDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
