// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"fmt"

	"github.com/pubpages/pubpages/pkg/pagetemplate"
)

// Extract implements Provisioner. Without a base template t is returned
// unchanged. Otherwise pages equal to a page of base are removed from t and t
// is returned.
func (p *PublishingPages) Extract(_ context.Context, t, base *pagetemplate.Template) (*pagetemplate.Template, error) {
	if t == nil || base == nil {
		return t, nil
	}

	index := make(map[uint64][]*pagetemplate.PublishingPage, base.PublishingPages.Len())
	for _, page := range base.PublishingPages.Pages() {
		h, err := page.Hash()
		if err != nil {
			return nil, fmt.Errorf("hash base page %s: %w", page.Name, err)
		}
		index[h] = append(index[h], page)
	}

	var hashErr error
	removed := t.PublishingPages.RemoveFunc(func(page *pagetemplate.PublishingPage) bool {
		h, err := page.Hash()
		if err != nil {
			hashErr = fmt.Errorf("hash page %s: %w", page.Name, err)
			return false
		}
		for _, candidate := range index[h] {
			if page.Equal(candidate) {
				return true
			}
		}
		return false
	})
	if hashErr != nil {
		return nil, hashErr
	}
	if removed > 0 {
		p.config.Logger.Debug("removed pages present in base template", "count", removed)
	}
	return t, nil
}
