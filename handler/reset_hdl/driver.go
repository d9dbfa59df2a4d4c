/*
 * Copyright 2024 InfAI (CC SES)
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package reset_hdl

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

// selector addresses a page element either by CSS query or XPath expression.
type selector struct {
	value string
	xpath bool
}

func css(value string) selector {
	return selector{value: value}
}

func xpath(value string) selector {
	return selector{value: value, xpath: true}
}

func (s selector) opt() chromedp.QueryOption {
	if s.xpath {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

// driver is the browser surface the reset workflow runs against. It exists so
// the workflow can be exercised without a real browser.
type driver interface {
	Navigate(ctx context.Context, url string) error
	Reload(ctx context.Context) error
	Title(ctx context.Context) (string, error)
	PageText(ctx context.Context) (string, error)
	Exists(ctx context.Context, sel selector) bool
	Fill(ctx context.Context, sel selector, value string) error
	Click(ctx context.Context, sel selector, forced bool) error
	WaitGone(ctx context.Context, sel selector, timeout time.Duration) error
	Close() error
}

type driverFactory func(headless bool) (driver, error)

// cdpDriver runs a dedicated browser instance per workflow invocation. The
// instance is torn down when the workflow finishes, pass or fail.
type cdpDriver struct {
	browserCtx  context.Context
	cancelFuncs []context.CancelFunc
}

func newCdpDriver(headless bool) (driver, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.WindowSize(1920, 1080),
		chromedp.IgnoreCertErrors,
		chromedp.UserAgent("mgw-gateway-monitor"),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, err
	}
	return &cdpDriver{
		browserCtx:  browserCtx,
		cancelFuncs: []context.CancelFunc{browserCancel, allocCancel},
	}, nil
}

func (d *cdpDriver) Navigate(ctx context.Context, url string) error {
	return d.run(ctx, chromedp.Navigate(url), chromedp.WaitReady("body", chromedp.ByQuery))
}

func (d *cdpDriver) Reload(ctx context.Context) error {
	return d.run(ctx, chromedp.Reload(), chromedp.WaitReady("body", chromedp.ByQuery))
}

func (d *cdpDriver) Title(ctx context.Context) (string, error) {
	var title string
	err := d.run(ctx, chromedp.Title(&title))
	return title, err
}

func (d *cdpDriver) PageText(ctx context.Context) (string, error) {
	var text string
	err := d.run(ctx, chromedp.Text("body", &text, chromedp.ByQuery))
	return text, err
}

func (d *cdpDriver) Exists(ctx context.Context, sel selector) bool {
	cCtx, cf := context.WithTimeout(ctx, 2*time.Second)
	defer cf()
	var nodes []*cdp.Node
	if err := d.run(cCtx, chromedp.Nodes(sel.value, &nodes, sel.opt(), chromedp.AtLeast(0))); err != nil {
		return false
	}
	return len(nodes) > 0
}

func (d *cdpDriver) Fill(ctx context.Context, sel selector, value string) error {
	return d.run(ctx, chromedp.SetValue(sel.value, value, sel.opt()))
}

// Click waits for the target to be visible; forced clicks settle for a ready
// node instead, for controls that render without layout visibility.
func (d *cdpDriver) Click(ctx context.Context, sel selector, forced bool) error {
	state := chromedp.NodeVisible
	if forced {
		state = chromedp.NodeReady
	}
	return d.run(ctx, chromedp.Click(sel.value, sel.opt(), state))
}

func (d *cdpDriver) WaitGone(ctx context.Context, sel selector, timeout time.Duration) error {
	cCtx, cf := context.WithTimeout(ctx, timeout)
	defer cf()
	return d.run(cCtx, chromedp.WaitNotPresent(sel.value, sel.opt()))
}

func (d *cdpDriver) Close() error {
	for _, cf := range d.cancelFuncs {
		cf()
	}
	return nil
}

func (d *cdpDriver) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx := d.browserCtx
	if deadline, ok := ctx.Deadline(); ok {
		var cf context.CancelFunc
		runCtx, cf = context.WithDeadline(d.browserCtx, deadline)
		defer cf()
	}
	return chromedp.Run(runCtx, actions...)
}
