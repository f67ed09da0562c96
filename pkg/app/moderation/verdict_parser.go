package moderation

import (
	"regexp"
	"strings"

	"github.com/devfest-tools/modgate/pkg/domain/moderation"
	"github.com/valyala/fastjson"
)

var fencedBlockRe = regexp.MustCompile("(?is)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// VerdictParser converts untrusted model output into a guaranteed-valid
// verdict. It never fails outward: when nothing usable can be extracted it
// substitutes the safe fallback.
type VerdictParser struct {
	pool fastjson.ParserPool
}

func NewVerdictParser() *VerdictParser {
	return &VerdictParser{}
}

// Parse attempts, in order: the whole trimmed string, the contents of a
// fenced code block, and the first balanced-looking {...} substring. The
// second return value reports whether the safe fallback was substituted.
func (p *VerdictParser) Parse(raw string) (moderation.Verdict, bool) {
	parser := p.pool.Get()
	defer p.pool.Put(parser)

	for _, candidate := range p.candidates(raw) {
		value, err := parser.Parse(candidate)
		if err != nil || value.Type() != fastjson.TypeObject {
			continue
		}
		return coerce(value), false
	}

	return moderation.SafeFallback(), true
}

func (p *VerdictParser) candidates(raw string) []string {
	var out []string

	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		out = append(out, trimmed)
	}

	if m := fencedBlockRe.FindStringSubmatch(raw); m != nil {
		out = append(out, strings.TrimSpace(m[1]))
	}

	if start := strings.IndexByte(raw, '{'); start >= 0 {
		if end := strings.LastIndexByte(raw, '}'); end > start {
			out = append(out, raw[start:end+1])
		}
	}

	return out
}

func coerce(value *fastjson.Value) moderation.Verdict {
	return moderation.Verdict{
		CocViolation: coerceBool(value.Get("cocViolation")),
		NSFW:         coerceBool(value.Get("nsfw")),
		Rubbish:      coerceBool(value.Get("rubbish")),
		Feedback:     coerceFeedback(value.Get("feedback")),
	}
}

// coerceBool accepts a native boolean, a string equal (case-insensitively)
// to "true", or the number 1. Anything else, including a missing field, is
// false. The upstream model is not a strictly typed system; its output shape
// drifts, and that drift must never become a crash.
func coerceBool(v *fastjson.Value) bool {
	if v == nil {
		return false
	}
	switch v.Type() {
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeString:
		b, err := v.StringBytes()
		if err != nil {
			return false
		}
		return strings.EqualFold(string(b), "true")
	case fastjson.TypeNumber:
		f, err := v.Float64()
		if err != nil {
			return false
		}
		return f == 1
	default:
		return false
	}
}

func coerceFeedback(v *fastjson.Value) string {
	if v == nil || v.Type() != fastjson.TypeString {
		return moderation.DefaultFeedback
	}
	b, err := v.StringBytes()
	if err != nil || len(b) == 0 {
		return moderation.DefaultFeedback
	}
	return string(b)
}
