package affiliate

import (
	"fmt"
	"net/url"
)

// Link derives the tracked product URL crediting a sale to the associate
// tag. Pure function; links carry no stored identity.
func Link(asin, tag string) string {
	return fmt.Sprintf("https://www.amazon.com/dp/%s?tag=%s&linkCode=ll1", url.PathEscape(asin), url.QueryEscape(tag))
}
