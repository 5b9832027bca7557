package browser

import (
	"github.com/playwright-community/playwright-go"
)

const lookupTimeoutMs = 1000

// pageDocument queries the live DOM of a rendered page.
type pageDocument struct {
	page playwright.Page
}

func (d *pageDocument) Lookup(selector string) (string, bool) {
	loc := d.page.Locator(selector).First()

	n, err := loc.Count()
	if err != nil || n == 0 {
		return "", false
	}

	text, err := loc.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(lookupTimeoutMs),
	})
	if err != nil {
		return "", false
	}
	return text, true
}
