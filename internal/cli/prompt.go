package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"saldo/internal/core"
	"saldo/internal/form"
	"saldo/internal/log"
)

// ErrAborted is returned when input ends before a form is complete.
var ErrAborted = errors.New("input closed before the form was submitted")

// RegisteredMessage confirms a new account.
const RegisteredMessage = "account created, you can now log in"

// Registerer creates accounts; *client.Client implements it.
type Registerer interface {
	Register(ctx context.Context, p form.RegisterPayload) error
}

// Prompter drives the entry and registration forms over line-based input.
type Prompter struct {
	in *bufio.Scanner
	r  *Renderer

	// Logger receives submission events. Nil logs nothing.
	Logger *log.Logger
}

func NewPrompter(in io.Reader, r *Renderer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), r: r}
}

func (p *Prompter) ask(label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(p.r.Out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(p.r.Out, "%s: ", label)
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrAborted
	}
	line := p.in.Text()
	if line == "" {
		return current, nil
	}
	return line, nil
}

func typeChoices() string {
	values := make([]string, len(core.TypeOptions))
	for i, o := range core.TypeOptions {
		values[i] = strconv.Itoa(i+1) + "=" + o.Value
	}
	return strings.Join(values, ", ")
}

// matchType resolves an answer to one of the type options, by its number
// in the list, its value or its label.
func matchType(s string) (core.TypeOption, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(core.TypeOptions) {
		return core.TypeOptions[n-1], true
	}
	for _, o := range core.TypeOptions {
		if strings.EqualFold(s, o.Value) || strings.EqualFold(s, o.Label) {
			return o, true
		}
	}
	return core.TypeOption{}, false
}

var fieldLabels = map[form.Field]string{
	form.FieldAmount:      "Amount",
	form.FieldDescription: "Description",
}

// AddTransaction asks for the entry form fields, validates them and sends
// the payload. Invalid fields are asked again; a failed send can be retried
// with the same values. It returns nil once the transaction is recorded.
func (p *Prompter) AddTransaction(ctx context.Context, sender form.Sender) error {
	f := form.New()
	var opts []form.SubmitterOption
	if p.Logger != nil {
		opts = append(opts, form.WithLogger(p.Logger))
	}
	sub := form.NewSubmitter(sender, opts...)
	sub.OnSuccess = p.r.Message
	sub.OnFailure = func(msg string) { p.r.Message("Error: " + msg) }

	pending := []form.Field{form.FieldAmount, form.FieldType, form.FieldDescription}
	for {
		for _, field := range pending {
			if err := p.askField(f, field); err != nil {
				sub.Detach()
				return err
			}
		}

		st, err := sub.Submit(ctx, f)
		if st == form.Success {
			return nil
		}

		var ve *form.ValidationError
		if errors.As(err, &ve) {
			p.r.FieldErrors(ve.Fields)
			pending = invalidFields(ve.Fields)
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		answer, aerr := p.ask("Retry? (y/N)", "")
		if aerr != nil || !strings.EqualFold(strings.TrimSpace(answer), "y") {
			return err
		}
		pending = nil
	}
}

func (p *Prompter) askField(f *form.Form, field form.Field) error {
	var current string
	switch field {
	case form.FieldAmount:
		current = f.Values.Amount
	case form.FieldType:
		return p.askType(f)
	case form.FieldDescription:
		current = f.Values.Description
	}
	v, err := p.ask(fieldLabels[field], current)
	if err != nil {
		return err
	}
	f.Set(field, v)
	return nil
}

// askType only accepts one of core.TypeOptions and asks again otherwise.
func (p *Prompter) askType(f *form.Form) error {
	label := "Type (" + typeChoices() + ")"
	for {
		v, err := p.ask(label, f.Values.Type)
		if err != nil {
			return err
		}
		if opt, ok := matchType(v); ok {
			f.Set(form.FieldType, opt.Value)
			return nil
		}
		p.r.Message("type: choose one of " + typeChoices())
	}
}

func invalidFields(e form.Errors) []form.Field {
	var out []form.Field
	for _, f := range []form.Field{form.FieldAmount, form.FieldType, form.FieldDescription} {
		if e.Get(f) != "" {
			out = append(out, f)
		}
	}
	return out
}

// Register asks for the sign-up fields until all three are filled, then
// sends them once. The server's message is shown on failure.
func (p *Prompter) Register(ctx context.Context, reg Registerer) error {
	for {
		var r form.Registration
		var err error
		if r.Username, err = p.ask("Username", ""); err != nil {
			return err
		}
		if r.Email, err = p.ask("Email", ""); err != nil {
			return err
		}
		if r.Password, err = p.ask("Password", ""); err != nil {
			return err
		}

		payload, err := form.ValidateRegistration(r)
		if err != nil {
			p.r.Message(err.Error())
			continue
		}

		if err := reg.Register(ctx, payload); err != nil {
			p.r.Message("Error: " + form.FailureMessage(err))
			return err
		}
		p.r.Message(RegisteredMessage)
		return nil
	}
}
