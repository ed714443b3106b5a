package engine

import (
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"config-forge/diagnostic"
	"config-forge/internal/common"
	"config-forge/internal/logging"
	"config-forge/params"
	"config-forge/registry"
	"config-forge/schema"
)

// Parameters resolves *registry.Parameter targets: one constructor
// argument together with the state surrounding it. Plain declared types
// pass straight through to their own handler; the dependent kinds read
// sibling state out of the parameter's local state first.
type Parameters struct{}

func NewParameters() *Parameters { return &Parameters{} }

func (pp *Parameters) Claims(target any, d *Dispatcher) bool {
	pr, ok := target.(*registry.Parameter)
	if !ok || pr == nil {
		return false
	}
	return pp.claims(pr.Type, d)
}

func (pp *Parameters) claims(t schema.Type, d *Dispatcher) bool {
	switch t.Kind {
	case schema.KindDependentCheck, schema.KindDependentBuild:
		if len(t.Args) != 1 {
			// malformed shapes are claimed so they diagnose as such
			return true
		}
		_, ok := pp.checkerFor(d, t.Args[0])
		return ok
	case schema.KindDependentUnion:
		if len(t.Args) != 2 || !t.Args[0].Kind.IsDependent() {
			return false
		}
		return pp.claims(t.Args[0], d) && pp.claims(t.Args[1], d)
	default:
		return d.Claims(t)
	}
}

func (pp *Parameters) Hashable(any, *Dispatcher) bool { return false }

func (pp *Parameters) Check(target any, d *Dispatcher, v any) *diagnostic.CheckError {
	pr := target.(*registry.Parameter)
	switch pr.Type.Kind {
	case schema.KindDependentCheck:
		return pp.dependentCheck(pr, d, v)
	case schema.KindDependentBuild:
		return pp.dependentBuildCheck(pr, d, v)
	case schema.KindDependentUnion:
		_, err := pp.unionMember(pr, d, v)
		return err
	default:
		return pp.identityCheck(pr, d, v)
	}
}

func (pp *Parameters) Build(target any, d *Dispatcher, v any) (any, error) {
	pr := target.(*registry.Parameter)
	switch pr.Type.Kind {
	case schema.KindDependentCheck, schema.KindDependentBuild:
		return pp.dependentBuild(pr, d, v)
	case schema.KindDependentUnion:
		member, err := pp.unionMember(pr, d, v)
		if err != nil {
			return nil, err
		}
		return d.Build(member, v)
	default:
		return d.Build(pr.Type, v)
	}
}

// identityCheck ignores the surrounding state: values already matching
// the declared type pass, everything else re-enters on the type itself.
func (pp *Parameters) identityCheck(pr *registry.Parameter, d *Dispatcher, v any) *diagnostic.CheckError {
	if pr.Type.Kind == schema.KindAny {
		return nil
	}
	if pr.Type.Kind == schema.KindObject && valueAssignable(v, pr.Type.Obj) {
		return nil
	}
	return d.Check(pr.Type, v)
}

// unionMember finds the first declared member the value satisfies. The
// dependent member sits first, so dependent state wins whenever both
// members would accept the value.
func (pp *Parameters) unionMember(pr *registry.Parameter, d *Dispatcher, v any) (*registry.Parameter, *diagnostic.CheckError) {
	agg := &diagnostic.Aggregate{}
	for _, arg := range pr.Type.Args {
		member := pr.Inner(arg)
		err := d.Check(member, v)
		if err == nil {
			return member, nil
		}
		agg.Add(member.String(), err)
	}
	return nil, agg.Err(pr.String(), v)
}

// dependentCheck validates a parameter whose dependencies are read from
// the raw configuration. The injected values themselves are only
// shallow-checked, since they may carry dependencies of their own that
// resolve at build time.
func (pp *Parameters) dependentCheck(pr *registry.Parameter, d *Dispatcher, v any) *diagnostic.CheckError {
	if err := pp.perfunctory(pr, d, v, false); err != nil {
		return err
	}
	wrapped := pr.Type.Args[0]
	gc, _ := pp.checkerFor(d, wrapped)
	pv, _ := params.Coerce(v)
	ctor, cerr := gc.ResolveConstructor(wrapped, fmt.Sprint(pv.Get("type")))
	if cerr != nil {
		return cerr
	}

	walked := walkLiteral(pr, pr.Type.Literal, false, -1)
	agg := &diagnostic.Aggregate{}
	for _, k := range common.SortedKeys(walked) {
		spec, ok := ctor.Param(k)
		if !ok {
			continue
		}
		agg.Add(k, pp.shallowCheck(spec.Type, d, walked[k]))
	}
	if err := agg.Err(pr.String(), v); err != nil {
		return err
	}

	reduced := ctor.Without(absentLiteralKeys(pr.Type.Literal, pv)...)
	return d.Check(reduced, pv)
}

// dependentBuildCheck validates a parameter whose dependencies only
// exist after construction. The dependency values cannot be inspected
// yet, so only the heads of their paths are verified against the raw
// sibling state.
func (pp *Parameters) dependentBuildCheck(pr *registry.Parameter, d *Dispatcher, v any) *diagnostic.CheckError {
	if err := pp.perfunctory(pr, d, v, true); err != nil {
		return err
	}
	wrapped := pr.Type.Args[0]
	gc, _ := pp.checkerFor(d, wrapped)
	pv, _ := params.Coerce(v)
	ctor, cerr := gc.ResolveConstructor(wrapped, fmt.Sprint(pv.Get("type")))
	if cerr != nil {
		return cerr
	}
	reduced := ctor.Without(absentLiteralKeys(pr.Type.Literal, pv)...)
	return d.Check(reduced, pv)
}

// dependentBuild resolves the dependency paths against the constructed
// sibling state, injects the results into the configuration, and builds
// the concrete type the tag selects.
func (pp *Parameters) dependentBuild(pr *registry.Parameter, d *Dispatcher, v any) (any, error) {
	if err := dependentShape(pr); err != nil {
		return nil, err
	}
	wrapped := pr.Type.Args[0]
	gc, ok := pp.checkerFor(d, wrapped)
	if !ok {
		return nil, diagnostic.MalformedDependency(pr.String())
	}

	walked := walkLiteral(pr, pr.Type.Literal, true, -1)
	if err := missingDeps(pr, pr.Type.Literal, walked); err != nil {
		return nil, err
	}

	pv, ok := params.Coerce(v)
	if !ok {
		return nil, diagnostic.ParamExpected(pr.String(), v)
	}
	for _, k := range common.SortedKeys(walked) {
		if !pv.Has(k) {
			pv.Set(k, walked[k])
		}
	}

	resolved, rok := gc.ResolveTarget(wrapped, fmt.Sprint(pv.Get("type")))
	if !rok {
		if gerr := gc.GeneralCheck(wrapped, d, pv); gerr != nil {
			return nil, gerr
		}
		return nil, diagnostic.WrongType(wrapped.String(), v)
	}
	logging.L().Debug("dependent state injected",
		zap.String("parameter", pr.Name),
		zap.String("target", resolved.String()))
	return d.Build(resolved, pv)
}

// perfunctory runs every dependent validation that does not touch the
// dependency values: the descriptor's shape, the wrapped type's
// admission ladder, the literal keys against the resolved constructor,
// path depth, and path reachability through the local state.
func (pp *Parameters) perfunctory(pr *registry.Parameter, d *Dispatcher, v any, built bool) *diagnostic.CheckError {
	if err := dependentShape(pr); err != nil {
		return err
	}
	wrapped := pr.Type.Args[0]
	gc, ok := pp.checkerFor(d, wrapped)
	if !ok {
		return diagnostic.MalformedDependency(pr.String())
	}
	if err := gc.GeneralCheck(wrapped, d, v); err != nil {
		return err
	}
	pv, _ := params.Coerce(v)
	ctor, cerr := gc.ResolveConstructor(wrapped, fmt.Sprint(pv.Get("type")))
	if cerr != nil {
		return cerr
	}

	literal := pr.Type.Literal
	var extras []string
	for _, k := range common.SortedKeys(literal) {
		if _, ok := ctor.Param(k); !ok {
			extras = append(extras, k)
		}
	}
	if len(extras) > 0 {
		return diagnostic.ExtraLiteral(pr.String(), extras)
	}

	var tooDeep []string
	for _, k := range common.SortedKeys(literal) {
		if len(strings.Split(literal[k], ".")) > 2 {
			tooDeep = append(tooDeep, literal[k])
		}
	}
	if len(tooDeep) > 0 {
		return diagnostic.TooDeepLiteral(pr.String(), tooDeep)
	}

	depth := -1
	if built {
		depth = 1
	}
	walked := walkLiteral(pr, literal, built, depth)
	return missingDeps(pr, literal, walked)
}

// shallowCheck admits a value for t without recursing into t's own
// dependencies: instances pass, hierarchy-backed targets get only the
// admission ladder, everything else gets the full check.
func (pp *Parameters) shallowCheck(t schema.Type, d *Dispatcher, v any) *diagnostic.CheckError {
	if t.Kind == schema.KindObject && valueAssignable(v, t.Obj) {
		return nil
	}
	if gc, ok := pp.checkerFor(d, t); ok {
		return gc.GeneralCheck(t, d, v)
	}
	return d.Check(t, v)
}

// checkerFor finds the claimant of t when it supports the admission
// protocol.
func (pp *Parameters) checkerFor(d *Dispatcher, t schema.Type) (generalChecker, bool) {
	h, ok := d.claimant(t)
	if !ok {
		return nil, false
	}
	gc, ok := h.(generalChecker)
	return gc, ok
}

// dependentShape verifies the dependent descriptor itself: exactly one
// wrapped type and a literal whose keys and dot paths are non-empty.
func dependentShape(pr *registry.Parameter) *diagnostic.CheckError {
	t := pr.Type
	if len(t.Args) != 1 {
		return diagnostic.MalformedDependency(pr.String())
	}
	if t.Literal == nil {
		return diagnostic.MissingLiteral(pr.String())
	}
	if len(t.Literal) == 0 {
		return diagnostic.UnaryLiteral(pr.String())
	}
	agg := &diagnostic.Aggregate{}
	for _, k := range common.SortedKeys(t.Literal) {
		if k == "" || badPath(t.Literal[k]) {
			agg.Add(k, diagnostic.WrongType("string", t.Literal[k]))
		}
	}
	if agg.Empty() {
		return nil
	}
	return diagnostic.MalformedLiteral(
		pr.String(), "Dict[string, string]", agg.Err("Dict[string, string]", t.Literal))
}

func badPath(path string) bool {
	if path == "" {
		return true
	}
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			return true
		}
	}
	return false
}

func absentLiteralKeys(literal map[string]string, pv *params.Params) []string {
	var out []string
	for _, k := range common.SortedKeys(literal) {
		if !pv.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

func missingDeps(pr *registry.Parameter, literal map[string]string, walked map[string]any) *diagnostic.CheckError {
	var missing []diagnostic.KV
	for _, k := range common.SortedKeys(literal) {
		if _, ok := walked[k]; !ok {
			missing = append(missing, diagnostic.KV{Name: k, Type: literal[k]})
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return diagnostic.MissingDependency(pr.String(), missing)
}

// walkLiteral resolves each literal's dot path through the parameter's
// local state. The first step is always a sibling lookup; with built
// state the remaining steps read members of constructed values, while
// raw state keeps indexing into nested configuration. maxDepth bounds
// the walk of built state, -1 walks the full path. Paths that dead-end
// are left out of the result.
func walkLiteral(pr *registry.Parameter, literal map[string]string, built bool, maxDepth int) map[string]any {
	out := map[string]any{}
	for name, path := range literal {
		segs := strings.Split(path, ".")
		bound := len(segs)
		if built && maxDepth >= 0 && maxDepth < bound {
			bound = maxDepth
		}
		var cur any = pr.LocalState
		ok := true
		for i := 0; ok && i < bound; i++ {
			if i == 0 || !built {
				cur, ok = mapIndex(cur, segs[i])
			} else {
				cur, ok = member(cur, segs[i])
			}
		}
		if ok {
			out[name] = cur
		}
	}
	return out
}

// mapIndex reads a key out of map-shaped state.
func mapIndex(cur any, key string) (any, bool) {
	switch m := cur.(type) {
	case nil:
		return nil, false
	case map[string]any:
		v, ok := m[key]
		return v, ok
	case *params.Params:
		if !m.Has(key) {
			return nil, false
		}
		return m.Get(key), true
	}
	rv := reflect.ValueOf(cur)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	if kk := rv.Type().Key().Kind(); kk != reflect.String && kk != reflect.Interface {
		return nil, false
	}
	mv := rv.MapIndex(reflect.ValueOf(key))
	if !mv.IsValid() {
		return nil, false
	}
	return mv.Interface(), true
}

// member reads a field or zero-argument method off a constructed value.
// Names match case-insensitively so configuration keys reach exported
// Go identifiers.
func member(cur any, name string) (any, bool) {
	if cur == nil {
		return nil, false
	}
	if v, ok := mapIndex(cur, name); ok {
		return v, true
	}
	rv := reflect.ValueOf(cur)
	sv := rv
	if sv.Kind() == reflect.Pointer {
		if sv.IsNil() {
			return nil, false
		}
		sv = sv.Elem()
	}
	if sv.Kind() == reflect.Struct {
		f := sv.FieldByNameFunc(func(n string) bool { return strings.EqualFold(n, name) })
		if f.IsValid() && f.CanInterface() {
			return f.Interface(), true
		}
	}
	rt := rv.Type()
	for i := 0; i < rt.NumMethod(); i++ {
		m := rt.Method(i)
		if !strings.EqualFold(m.Name, name) {
			continue
		}
		if m.Type.NumIn() != 1 || m.Type.NumOut() < 1 {
			continue
		}
		return rv.Method(i).Call(nil)[0].Interface(), true
	}
	return nil, false
}
