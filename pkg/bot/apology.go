package bot

import (
	"errors"
	"net"
	"net/http"

	"lutherbot/pkg/generation"

	"github.com/openai/openai-go"
)

const apologyPrefix = "🙏 弟兄姊妹，我現在無法回應您的問題。"

type ApologyKind int

const (
	ApologyGeneric ApologyKind = iota
	ApologyRateLimited
	ApologyAuth
	ApologyConnectivity
)

func (k ApologyKind) String() string {
	switch k {
	case ApologyRateLimited:
		return "rate_limited"
	case ApologyAuth:
		return "auth"
	case ApologyConnectivity:
		return "connectivity"
	default:
		return "generic"
	}
}

type Apology struct {
	Kind ApologyKind
	Text string
}

var apologySuffixes = map[ApologyKind]string{
	ApologyGeneric:      "請稍後再試。",
	ApologyRateLimited:  "請稍候片刻再詢問。",
	ApologyAuth:         "我的認證出現問題。",
	ApologyConnectivity: "網路連線出現問題。",
}

// ClassifyError maps a backend failure to the apology shown to the user.
func ClassifyError(err error) Apology {
	kind := classify(err)
	return Apology{Kind: kind, Text: apologyPrefix + apologySuffixes[kind]}
}

func classify(err error) ApologyKind {
	if err == nil {
		return ApologyGeneric
	}

	var status int
	var code string

	var backendErr *generation.BackendError
	var apiErr *openai.Error
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &backendErr):
		status, code = backendErr.Status, backendErr.Code
	case errors.As(err, &dnsErr):
		code = generation.CodeNotFound
	case errors.As(err, &apiErr):
		status, code = apiErr.StatusCode, apiErr.Code
	}

	switch {
	case status == http.StatusTooManyRequests:
		return ApologyRateLimited
	case status == http.StatusUnauthorized:
		return ApologyAuth
	case code == generation.CodeNotFound:
		return ApologyConnectivity
	default:
		return ApologyGeneric
	}
}
