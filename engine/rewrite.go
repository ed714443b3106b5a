package engine

import (
	"fmt"
	"os"

	"config-forge/diagnostic"
	"config-forge/params"
	"config-forge/registry"
)

// KVRewriter swaps a parameter's configuration for a value from a
// caller-supplied table. It claims a parameter whose value is a Params
// of the form {"type": "user_dict", "key": <table key>}; the table
// value is then built against the parameter's declared type.
type KVRewriter struct {
	table map[string]any
}

func NewKVRewriter(table map[string]any) *KVRewriter {
	return &KVRewriter{table: table}
}

func (kr *KVRewriter) Claims(target any, d *Dispatcher, v any) bool {
	return rewriteClaims(target, v, "user_dict", func(key string) bool {
		_, ok := kr.table[key]
		return ok
	})
}

func (kr *KVRewriter) Rewrite(target any, d *Dispatcher, v any) (any, *diagnostic.CheckError) {
	p, ok := params.Coerce(v)
	if !ok {
		// an earlier rewriter already replaced the request
		return v, nil
	}
	key, _ := p.Get("key").(string)
	return rewriteValue(kr, target, d, v, kr.table[key])
}

// EnvRewriter injects values from the process environment. It claims a
// parameter whose value is a Params of the form {"type": "ENV", "key":
// <variable name>}; the variable's value is built against the
// parameter's declared type, so "8080" satisfies an int parameter.
type EnvRewriter struct{}

func NewEnvRewriter() *EnvRewriter { return &EnvRewriter{} }

func (er *EnvRewriter) Claims(target any, d *Dispatcher, v any) bool {
	return rewriteClaims(target, v, "ENV", func(key string) bool {
		_, ok := os.LookupEnv(key)
		return ok
	})
}

func (er *EnvRewriter) Rewrite(target any, d *Dispatcher, v any) (any, *diagnostic.CheckError) {
	p, ok := params.Coerce(v)
	if !ok {
		return v, nil
	}
	key, _ := p.Get("key").(string)
	value, _ := os.LookupEnv(key)
	return rewriteValue(er, target, d, v, value)
}

func rewriteClaims(target any, v any, tag string, has func(string) bool) bool {
	pr, ok := target.(*registry.Parameter)
	if !ok || pr == nil {
		return false
	}
	p, ok := params.Coerce(v)
	if !ok {
		return false
	}
	tv, ok := p.Get("type").(string)
	if !ok || tv != tag {
		return false
	}
	key, ok := p.Get("key").(string)
	return ok && has(key)
}

// rewriteValue builds the injected value against the parameter's
// declared type, wrapping any failure with the rewriter and parameter
// that caused it.
func rewriteValue(rw Rewriter, target any, d *Dispatcher, v, value any) (any, *diagnostic.CheckError) {
	pr := target.(*registry.Parameter)
	built, err := d.Build(pr.Type, value)
	if err != nil {
		return nil, diagnostic.RewriteFailed(fmt.Sprintf("%T", rw), pr.Name, pr.String(), v, err)
	}
	return built, nil
}
