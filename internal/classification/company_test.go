package classification

import (
	"testing"

	"github.com/sisifus/jobflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultExtractor(t *testing.T) *CompanyExtractor {
	t.Helper()
	filter, err := NewRelevanceFilter(DefaultRelevanceConfig())
	require.NoError(t, err)
	return NewCompanyExtractor(DefaultGenericProviders(), filter)
}

func TestCompanyExtractor_Extract(t *testing.T) {
	e := defaultExtractor(t)

	tests := []struct {
		name   string
		sender model.Sender
		want   string
	}{
		{
			name:   "company domain",
			sender: model.Sender{Address: "hr@acmecorp.com"},
			want:   "Acmecorp",
		},
		{
			name:   "hyphenated company domain",
			sender: model.Sender{Name: "John Doe", Address: "john@example-company.com"},
			want:   "Example Company",
		},
		{
			name:   "subdomain noise stripped",
			sender: model.Sender{Address: "noreply@mail.techstartup.com"},
			want:   "Techstartup",
		},
		{
			name:   "country TLD second level stripped",
			sender: model.Sender{Address: "rh@empresa.com.br"},
			want:   "Empresa",
		},
		{
			name:   "generic provider falls back to display name",
			sender: model.Sender{Name: "Acme Recruiting", Address: "talent@gmail.com"},
			want:   "Acme Recruiting",
		},
		{
			name:   "generic provider without display name",
			sender: model.Sender{Address: "someone@gmail.com"},
			want:   model.UnknownCompany,
		},
		{
			name:   "job platform relay falls back to display name",
			sender: model.Sender{Name: "LinkedIn Job Alerts", Address: "jobs-noreply@linkedin.com"},
			want:   "LinkedIn Job Alerts",
		},
		{
			name:   "platform relay without display name",
			sender: model.Sender{Address: "no-reply@linkedin.com"},
			want:   model.UnknownCompany,
		},
		{
			name:   "unparseable sender",
			sender: model.Sender{Address: "not-an-address"},
			want:   model.UnknownCompany,
		},
		{
			name:   "empty sender",
			sender: model.Sender{},
			want:   model.UnknownCompany,
		},
		{
			name:   "numeric display name rejected",
			sender: model.Sender{Name: "12345", Address: "x@hotmail.com"},
			want:   model.UnknownCompany,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(model.Email{Sender: tt.sender})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSender(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantName   string
		wantAddr   string
		wantDomain string
	}{
		{
			name:       "name and address",
			raw:        `"Jane Recruiter" <jane@acmecorp.com>`,
			wantName:   "Jane Recruiter",
			wantAddr:   "jane@acmecorp.com",
			wantDomain: "acmecorp.com",
		},
		{
			name:       "bare address",
			raw:        "hr@techstartup.com",
			wantAddr:   "hr@techstartup.com",
			wantDomain: "techstartup.com",
		},
		{
			name:       "mixed case domain lowered",
			raw:        "HR@AcmeCorp.COM",
			wantAddr:   "HR@AcmeCorp.COM",
			wantDomain: "acmecorp.com",
		},
		{
			name:     "garbage stays as address with no domain",
			raw:      "garbage without at sign",
			wantAddr: "garbage without at sign",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := model.ParseSender(tt.raw)
			assert.Equal(t, tt.wantName, s.Name)
			assert.Equal(t, tt.wantAddr, s.Address)
			assert.Equal(t, tt.wantDomain, s.Domain())
		})
	}
}
