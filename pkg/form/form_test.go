package form_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/getkin/kin-openapi/openapi3"
	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/state"
	"github.com/goliatone/go-formkit/pkg/validation"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func loginValidator(t *testing.T) *validation.SchemaValidator {
	t.Helper()
	schema := openapi3.NewObjectSchema().
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("password", openapi3.NewStringSchema().WithMinLength(6)).
		WithRequired([]string{"email", "password"})
	validator, err := validation.NewSchemaValidator(schema)
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	return validator
}

func loginFields() []form.Field {
	return []form.Field{
		{
			Name:         "email",
			Label:        "Email",
			Type:         form.InputEmail,
			Placeholder:  "you@example.com",
			DefaultValue: validation.Values{"email": "test@gmail.com"},
		},
		{
			Name:         "password",
			Label:        "Password",
			Description:  "At least <b>six</b> characters<script>alert(1)</script>",
			Type:         form.InputPassword,
			DefaultValue: validation.Values{"password": ""},
		},
	}
}

type submissions struct {
	calls []credentials
	err   error
}

func (s *submissions) handle(_ context.Context, value credentials) error {
	s.calls = append(s.calls, value)
	return s.err
}

func newLoginForm(t *testing.T, sink *submissions, opts ...form.Option) *form.Form[credentials] {
	t.Helper()
	opts = append([]form.Option{form.WithID("login")}, opts...)
	f, err := form.New(loginFields(), loginValidator(t), sink.handle, opts...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

func render(t *testing.T, f interface {
	Render(context.Context) ([]byte, error)
}) string {
	t.Helper()
	out, err := f.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestSubmitRejectsThenAcceptsLoginRecord(t *testing.T) {
	ctx := context.Background()
	sink := &submissions{}
	f := newLoginForm(t, sink)

	ok, err := f.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if ok || len(sink.calls) != 0 {
		t.Fatalf("expected rejected submit without handler call, ok=%v calls=%d", ok, len(sink.calls))
	}

	wantErrors := map[string]string{"password": "Must be at least 6 characters"}
	if diff := cmp.Diff(wantErrors, f.Errors().Messages()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	html := render(t, f)
	if got := strings.Count(html, "Must be at least 6 characters"); got != 1 {
		t.Fatalf("expected one password error in markup, got %d\n%s", got, html)
	}
	if !strings.Contains(html, `<p id="login-email-error" class="formkit-error" role="alert"></p>`) {
		t.Fatalf("expected empty email error region\n%s", html)
	}
	if !strings.Contains(html, `data-formkit-focus="login-password"`) {
		t.Fatalf("expected focus target on password\n%s", html)
	}

	if err := f.Change(ctx, "password", "secret1"); err != nil {
		t.Fatalf("change: %v", err)
	}
	ok, err = f.Submit(ctx)
	if err != nil || !ok {
		t.Fatalf("expected accepted submit, ok=%v err=%v", ok, err)
	}

	want := []credentials{{Email: "test@gmail.com", Password: "secret1"}}
	if diff := cmp.Diff(want, sink.calls); diff != "" {
		t.Fatalf("handler calls mismatch (-want +got):\n%s", diff)
	}
	if got := f.Values()["password"]; got != "secret1" {
		t.Fatalf("submit must not reset the form, password=%v", got)
	}
}

func TestResetRestoresComputedDefaults(t *testing.T) {
	ctx := context.Background()
	f := newLoginForm(t, &submissions{}, form.WithResetButton(true))

	if err := f.Change(ctx, "email", "bad"); err != nil {
		t.Fatalf("change email: %v", err)
	}
	if err := f.Change(ctx, "password", "123456"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, ok := f.Errors().For("email"); !ok {
		t.Fatalf("expected email error before reset")
	}

	if err := f.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	want := validation.Values{"email": "test@gmail.com", "password": ""}
	if diff := cmp.Diff(want, f.Values()); diff != "" {
		t.Fatalf("values after reset (-want +got):\n%s", diff)
	}
	if errs := f.Errors(); len(errs) != 0 {
		t.Fatalf("expected no errors after reset, got %v", errs)
	}

	html := render(t, f)
	if !strings.Contains(html, `value="test@gmail.com"`) {
		t.Fatalf("expected default email in markup\n%s", html)
	}
	if strings.Contains(html, "Must be") {
		t.Fatalf("expected no error messages after reset\n%s", html)
	}
	if !strings.Contains(html, `<button id="login-reset" type="reset" class="formkit-reset">Reset</button>`) {
		t.Fatalf("expected reset control\n%s", html)
	}

	if err := f.Change(ctx, "email", "bad"); err != nil {
		t.Fatalf("change after reset: %v", err)
	}
	if _, ok := f.Errors().For("email"); !ok {
		t.Fatalf("expected errors to return on the next change")
	}
}

func TestCustomComponentReceivesScopedAccessor(t *testing.T) {
	ctx := context.Background()
	fields := loginFields()

	var seen state.Field
	var desc form.Field
	fields[1].Component = form.FieldRendererFunc(func(_ context.Context, field state.Field, d form.Field) (string, error) {
		seen = field
		desc = d
		return `<input name="` + field.Name + `" data-strength="weak"><script>alert(1)</script>`, nil
	})

	f, err := form.New(fields, loginValidator(t), (&submissions{}).handle, form.WithID("login"))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	html := render(t, f)
	if seen.Name != "password" || seen.ID != "login-password" || desc.Label != "Password" {
		t.Fatalf("unexpected accessor %+v / descriptor %+v", seen, desc)
	}
	if strings.Contains(html, "<script") {
		t.Fatalf("custom component output must be sanitised\n%s", html)
	}
	if !strings.Contains(html, `data-strength="weak"`) {
		t.Fatalf("expected custom control markup\n%s", html)
	}

	seen.OnChange("hunter22")
	want := validation.Values{"email": "test@gmail.com", "password": "hunter22"}
	if diff := cmp.Diff(want, f.Values()); diff != "" {
		t.Fatalf("values after accessor change (-want +got):\n%s", diff)
	}
	if _, err := f.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
}

func TestDefaultControlMarkup(t *testing.T) {
	f := newLoginForm(t, &submissions{})
	html := render(t, f)

	for _, fragment := range []string{
		`<label for="login-email" class="formkit-label">Email</label>`,
		`<input id="login-email" name="email" type="email" value="test@gmail.com" placeholder="you@example.com" class="formkit-input">`,
		`<input id="login-password" name="password" type="password" value="" class="formkit-input">`,
		`<p class="formkit-description">At least <b>six</b> characters</p>`,
		`<button id="login-submit" type="submit" class="formkit-submit">Submit</button>`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected fragment %q\n%s", fragment, html)
		}
	}
	if strings.Contains(html, "alert(1)") || strings.Contains(html, `type="reset"`) {
		t.Fatalf("unexpected markup\n%s", html)
	}
	if strings.Index(html, `data-formkit-field="email"`) > strings.Index(html, `data-formkit-field="password"`) {
		t.Fatalf("fields must render in list order\n%s", html)
	}
}

func TestRenderGridLayout(t *testing.T) {
	f := newLoginForm(t, &submissions{},
		form.WithResetButton(true),
		form.WithLayout(form.Layout{
			GridTemplateAreas:   "email password",
			GridTemplateColumns: "1fr 1fr",
		}),
	)
	html := render(t, f)

	for _, fragment := range []string{
		`class="formkit formkit--grid"`,
		`display: grid; grid-template-areas: email password; grid-template-columns: 1fr 1fr`,
		`style="grid-area: email"`,
		`style="grid-area: password"`,
		`style="grid-area: submit"`,
		`style="grid-area: reset"`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected fragment %q\n%s", fragment, html)
		}
	}

	plain := render(t, newLoginForm(t, &submissions{}))
	if strings.Contains(plain, "grid-area") {
		t.Fatalf("expected no grid placement without layout\n%s", plain)
	}
}

func TestHandlerErrorIsRecordedAsFormError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("account locked")
	f := newLoginForm(t, &submissions{err: boom})
	_ = f.Change(ctx, "password", "secret1")

	ok, err := f.Submit(ctx)
	if !ok || !errors.Is(err, boom) {
		t.Fatalf("expected handler error, ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff([]string{"account locked"}, f.FormErrors()); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
	if html := render(t, f); !strings.Contains(html, `<div class="formkit-form-errors" role="alert"><p>account locked</p></div>`) {
		t.Fatalf("expected form error region\n%s", html)
	}
}

func TestNewRejectsConfigurationDefects(t *testing.T) {
	validator := loginValidator(t)
	handler := (&submissions{}).handle

	cases := []struct {
		name   string
		fields []form.Field
		want   error
	}{
		{name: "empty name", fields: []form.Field{{Name: ""}}, want: form.ErrFieldNameRequired},
		{name: "duplicate", fields: []form.Field{{Name: "email"}, {Name: "email"}}, want: form.ErrDuplicateField},
		{name: "unknown", fields: []form.Field{{Name: "email"}, {Name: "username"}}, want: form.ErrUnknownField},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := form.New(tc.fields, validator, handler); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := form.New[credentials](loginFields(), nil, handler); !errors.Is(err, form.ErrValidatorRequired) {
		t.Fatalf("expected ErrValidatorRequired, got %v", err)
	}
	if _, err := form.New[credentials](loginFields(), validator, nil); !errors.Is(err, form.ErrSubmitHandlerRequired) {
		t.Fatalf("expected ErrSubmitHandlerRequired, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustNew to panic on duplicate fields")
		}
	}()
	form.MustNew([]form.Field{{Name: "email"}, {Name: "email"}}, validator, handler)
}

func TestDefaultValuesFold(t *testing.T) {
	got, err := form.DefaultValues([]form.Field{
		{Name: "email", DefaultValue: validation.Values{"email": "a@b.co", "password": "ignored"}},
		{Name: "password", DefaultValue: validation.Values{"password": ""}},
		{Name: "remember"},
	})
	if err != nil {
		t.Fatalf("default values: %v", err)
	}
	want := validation.Values{"email": "a@b.co", "password": ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestEventsOnUnknownFields(t *testing.T) {
	f := newLoginForm(t, &submissions{})
	if err := f.Change(context.Background(), "username", "ada"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, err := f.Bind(context.Background(), "username"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField from Bind, got %v", err)
	}
}

type recordingObserver struct {
	observed map[string][]string
	released []string
}

func (r *recordingObserver) Observe(_ context.Context, region string, children []string) {
	if r.observed == nil {
		r.observed = make(map[string][]string)
	}
	r.observed[region] = children
}

func (r *recordingObserver) Release(region string) {
	r.released = append(r.released, region)
}

func TestLayoutObserverAndUnmount(t *testing.T) {
	ctx := context.Background()
	observer := &recordingObserver{}
	f := newLoginForm(t, &submissions{}, form.WithLayoutObserver(observer))

	html := render(t, f)
	if !strings.Contains(html, `data-formkit-animate="login"`) {
		t.Fatalf("expected animatable region marker\n%s", html)
	}
	want := map[string][]string{"login": {"login-email-field", "login-password-field", "login-submit"}}
	if diff := cmp.Diff(want, observer.observed); diff != "" {
		t.Fatalf("observed children mismatch (-want +got):\n%s", diff)
	}

	f.Unmount(ctx)
	f.Unmount(ctx)
	if diff := cmp.Diff([]string{"login"}, observer.released); diff != "" {
		t.Fatalf("released regions mismatch (-want +got):\n%s", diff)
	}
	if f.Mounted() {
		t.Fatalf("expected form to report unmounted")
	}

	if _, err := f.Render(ctx); !errors.Is(err, form.ErrUnmounted) {
		t.Fatalf("expected ErrUnmounted from Render, got %v", err)
	}
	if _, err := f.Submit(ctx); !errors.Is(err, form.ErrUnmounted) {
		t.Fatalf("expected ErrUnmounted from Submit, got %v", err)
	}
	if err := f.Change(ctx, "email", "x"); !errors.Is(err, form.ErrUnmounted) {
		t.Fatalf("expected ErrUnmounted from Change, got %v", err)
	}
	if err := f.Reset(ctx); !errors.Is(err, form.ErrUnmounted) {
		t.Fatalf("expected ErrUnmounted from Reset, got %v", err)
	}
	if f.Values() != nil {
		t.Fatalf("expected no values after unmount")
	}
}

func TestHooksReportLifecycle(t *testing.T) {
	ctx := context.Background()
	var outcomes []string
	var changed []string
	counts := map[string]int{}

	hooks := form.Hooks{
		OnMount:  func(context.Context, *form.Event) { counts["mount"]++ },
		OnRender: func(context.Context, *form.Event) { counts["render"]++ },
		OnChange: func(_ context.Context, e *form.Event) { changed = append(changed, e.Field) },
		OnSubmit: func(_ context.Context, e *form.Event) { outcomes = append(outcomes, e.Outcome) },
		OnReset:  func(context.Context, *form.Event) { counts["reset"]++ },
	}
	extra := form.Hooks{
		OnSubmit: func(context.Context, *form.Event) { counts["submit"]++ },
	}

	f := newLoginForm(t, &submissions{}, form.WithHooks(hooks), form.WithHooks(extra))
	render(t, f)
	_, _ = f.Submit(ctx)
	_ = f.Change(ctx, "password", "secret1")
	_, _ = f.Submit(ctx)
	_ = f.Reset(ctx)

	if diff := cmp.Diff([]string{form.OutcomeRejected, form.OutcomeAccepted}, outcomes); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"password"}, changed); diff != "" {
		t.Fatalf("changed fields mismatch (-want +got):\n%s", diff)
	}
	want := map[string]int{"mount": 1, "render": 1, "reset": 1, "submit": 2}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("hook counts mismatch (-want +got):\n%s", diff)
	}
}

func TestThemeSelectsTemplatesAndTokens(t *testing.T) {
	selection := &theme.Selection{
		Theme: "acme",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens:  map[string]string{"brand": "#123456"},
			Templates: map[string]string{
				form.TemplateKeyInput: "themes/acme/input.tmpl",
			},
		},
	}
	overrides := fstest.MapFS{
		"themes/acme/input.tmpl": {Data: []byte(`<span class="acme-input">{{ name }}={{ value }}</span>`)},
	}

	f := newLoginForm(t, &submissions{}, form.WithTheme(selection), form.WithTemplatesFS(overrides))
	html := render(t, f)

	if !strings.Contains(html, `<span class="acme-input">email=test@gmail.com</span>`) {
		t.Fatalf("expected themed input template\n%s", html)
	}
	if !strings.Contains(html, `style="--formkit-brand: #123456"`) {
		t.Fatalf("expected theme tokens as css variables\n%s", html)
	}
	if !strings.Contains(html, `class="formkit-submit"`) {
		t.Fatalf("expected embedded form template as fallback\n%s", html)
	}
}

func TestValuesRecordType(t *testing.T) {
	var got validation.Values
	f, err := form.New(loginFields(), loginValidator(t), func(_ context.Context, values validation.Values) error {
		got = values
		return nil
	})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	_ = f.Change(context.Background(), "password", "secret1")
	if ok, err := f.Submit(context.Background()); !ok || err != nil {
		t.Fatalf("expected accepted submit, ok=%v err=%v", ok, err)
	}
	want := validation.Values{"email": "test@gmail.com", "password": "secret1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}
