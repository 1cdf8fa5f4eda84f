package resolve

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"fundscout-engine/internal/web"
)

func TestScoreCandidate(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		title     string
		wantAbove int
		wantBelow int
	}{
		{
			name:      "company page with name in title",
			url:       "https://www.linkedin.com/company/acme-robotics",
			title:     "Acme Robotics | LinkedIn",
			wantAbove: 70,
		},
		{
			name:      "personal profile",
			url:       "https://www.linkedin.com/in/jane-doe",
			title:     "Jane Doe - Founder at Acme Robotics",
			wantBelow: 50,
		},
		{
			name:      "jobs listing penalized",
			url:       "https://www.linkedin.com/jobs/view/12345",
			title:     "Engineer at Acme Robotics",
			wantBelow: 50,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreCandidate("Acme Robotics", "acme.io", tt.url, tt.title)
			if tt.wantAbove > 0 {
				assert.GreaterOrEqual(t, got, tt.wantAbove)
			}
			if tt.wantBelow > 0 {
				assert.Less(t, got, tt.wantBelow)
			}
		})
	}
}

func TestFindBestPrefersCompanyPage(t *testing.T) {
	search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `
			<a class="result__a" href="https://www.linkedin.com/in/jane-doe">Jane Doe - Acme Robotics</a>
			<a class="result__a" href="https://www.linkedin.com/company/acme-robotics/?trk=abc">Acme Robotics | LinkedIn</a>
			<a class="result__a" href="https://acme.io/about">About us</a>
		`)
	}))
	defer search.Close()

	f := NewLinkedInFinder(web.NewClient(2*time.Second, nil), zap.NewNop())
	f.searchBase = search.URL + "/html/"

	got := f.FindBest(context.Background(), "Acme Robotics", "acme.io")
	assert.Equal(t, "https://www.linkedin.com/company/acme-robotics", got)
}

func TestFindBestEmptyInputs(t *testing.T) {
	f := NewLinkedInFinder(web.NewClient(time.Second, nil), zap.NewNop())
	assert.Equal(t, "", f.FindBest(context.Background(), "", "acme.io"))
}
