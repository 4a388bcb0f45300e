package dispatcher

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/kamecha/denops-translate.vim/internal"
	"github.com/kamecha/denops-translate.vim/internal/option"
)

type fakeLines []string

func (f fakeLines) Lines(ctx context.Context, start, end int) ([]string, error) {
	return f, nil
}

type fakeVars map[string]string

func (f fakeVars) Var(ctx context.Context, name string) (string, bool, error) {
	v, ok := f[name]
	return v, ok, nil
}

type staticKey string

func (k staticKey) Get() (string, error) {
	return string(k), nil
}

type fakeDeepL struct {
	req   *option.Request
	lines []string
	err   error
}

func (f *fakeDeepL) Name() string { return "deepl" }

func (f *fakeDeepL) Translate(ctx context.Context, req *option.Request) ([]string, error) {
	f.req = req
	return f.lines, f.err
}

type fakeGeneric struct {
	text, source, target string
	out                  string
	err                  error
	calls                int
}

func (f *fakeGeneric) Name() string { return "fake" }

func (f *fakeGeneric) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	f.calls++
	f.text, f.source, f.target = text, sourceLang, targetLang
	return f.out, f.err
}

type fakeHistory struct {
	requests []internal.TranslationRequest
	results  []string
	errs     []string
	saveErr  error
}

func (f *fakeHistory) SaveRequest(ctx context.Context, req internal.TranslationRequest) error {
	f.requests = append(f.requests, req)
	return f.saveErr
}

func (f *fakeHistory) SaveResult(ctx context.Context, requestID, serviceName, translatedText string, latencyMs int, errMsg string) error {
	f.results = append(f.results, translatedText)
	f.errs = append(f.errs, errMsg)
	return nil
}

func rawArgs(bang, mode, arg string) []interface{} {
	return []interface{}{
		bang,
		map[string]interface{}{"line": int64(1), "col": int64(0)},
		map[string]interface{}{"line": int64(2), "col": int64(3)},
		mode,
		arg,
	}
}

func TestDispatcher_GenericBackend(t *testing.T) {
	generic := &fakeGeneric{out: "こんにちは\n世界"}
	deepl := &fakeDeepL{}
	b := option.NewBuilder(fakeLines{"hello", "world"}, nil, nil)
	d := New(b, deepl, generic)

	lines, err := d.Handle(context.Background(), rawArgs("", "V", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"こんにちは", "世界"}) {
		t.Errorf("unexpected lines %q", lines)
	}
	if generic.text != "hello\nworld" || generic.source != "en" || generic.target != "ja" {
		t.Errorf("unexpected generic call %q %s->%s", generic.text, generic.source, generic.target)
	}
	if deepl.req != nil {
		t.Error("expected DeepL not to be called")
	}
}

func TestDispatcher_BangReverses(t *testing.T) {
	generic := &fakeGeneric{out: "hello"}
	d := New(option.NewBuilder(fakeLines{"x"}, nil, nil), &fakeDeepL{}, generic)

	if _, err := d.Handle(context.Background(), rawArgs("!", "V", "こんにちは")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if generic.source != "ja" || generic.target != "en" {
		t.Errorf("expected ja->en, got %s->%s", generic.source, generic.target)
	}
}

func TestDispatcher_DeepLBackend(t *testing.T) {
	deepl := &fakeDeepL{lines: []string{"a", "b"}}
	generic := &fakeGeneric{}
	vars := fakeVars{option.VarEndpointName: "https://api-free.deepl.com/v2/translate"}
	d := New(option.NewBuilder(fakeLines{"x"}, vars, staticKey("key")), deepl, generic)

	lines, err := d.Handle(context.Background(), rawArgs("", "V", "de fr"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"a", "b"}) {
		t.Errorf("expected DeepL lines verbatim, got %q", lines)
	}
	if deepl.req.AuthKey != "key" || deepl.req.Source != "de" || deepl.req.Target != "fr" {
		t.Errorf("unexpected DeepL request %+v", deepl.req)
	}
	if generic.calls != 0 {
		t.Error("expected generic backend not to be called")
	}
}

func TestDispatcher_BackendError(t *testing.T) {
	backendErr := errors.New("backend down")
	history := &fakeHistory{}
	d := New(option.NewBuilder(fakeLines{"x"}, nil, nil), &fakeDeepL{}, &fakeGeneric{err: backendErr}, WithHistory(history))

	lines, err := d.Handle(context.Background(), rawArgs("", "V", ""))
	if !errors.Is(err, backendErr) {
		t.Errorf("expected backend error, got %v", err)
	}
	if lines != nil {
		t.Errorf("expected no partial result, got %q", lines)
	}
	if len(history.errs) != 1 || history.errs[0] != "backend down" {
		t.Errorf("expected failure recorded, got %q", history.errs)
	}
}

func TestDispatcher_MalformedInvocation(t *testing.T) {
	generic := &fakeGeneric{}
	d := New(option.NewBuilder(fakeLines{"x"}, nil, nil), &fakeDeepL{}, generic)

	_, err := d.Handle(context.Background(), []interface{}{1, nil, nil, "v"})
	if !errors.Is(err, ErrMalformedInvocation) {
		t.Errorf("expected ErrMalformedInvocation, got %v", err)
	}
	if generic.calls != 0 {
		t.Error("expected no backend call")
	}
}

func TestDispatcher_RecordsHistory(t *testing.T) {
	history := &fakeHistory{}
	d := New(option.NewBuilder(fakeLines{"hello"}, nil, nil), &fakeDeepL{}, &fakeGeneric{out: "やあ"}, WithHistory(history))

	if _, err := d.Handle(context.Background(), rawArgs("", "V", "")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(history.requests))
	}
	if history.requests[0].SourceText != "hello" || history.requests[0].ID == "" {
		t.Errorf("unexpected request %+v", history.requests[0])
	}
	if len(history.results) != 1 || history.results[0] != "やあ" {
		t.Errorf("unexpected results %q", history.results)
	}
}

func TestDispatcher_HistoryFailureIgnored(t *testing.T) {
	history := &fakeHistory{saveErr: errors.New("disk full")}
	d := New(option.NewBuilder(fakeLines{"hello"}, nil, nil), &fakeDeepL{}, &fakeGeneric{out: "やあ"}, WithHistory(history))

	lines, err := d.Handle(context.Background(), rawArgs("", "V", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"やあ"}) {
		t.Errorf("unexpected lines %q", lines)
	}
}

type recordingBinder struct {
	calls [][]string
	err   error
}

func (r *recordingBinder) Map(mode, lhs, rhs string, silent bool) error {
	r.calls = append(r.calls, []string{mode, lhs, rhs})
	return r.err
}

func TestRegisterMappings(t *testing.T) {
	kb := &recordingBinder{}

	if err := RegisterMappings(kb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{
		{"n", "<Plug>(Translate)", ":Translate<CR>"},
		{"v", "<Plug>(Translate)", ":Translate<CR>"},
	}
	if !reflect.DeepEqual(kb.calls, want) {
		t.Errorf("expected %q, got %q", want, kb.calls)
	}
}

func TestRegisterMappings_Error(t *testing.T) {
	kb := &recordingBinder{err: errors.New("E227")}

	if err := RegisterMappings(kb); err == nil {
		t.Error("expected error")
	}
}
