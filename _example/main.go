// Command example drives a few validatus fields the way an input binding
// would: typing into them, blurring them and printing what a form would show.
//
// Run:
//
//	go run ./_example
package main

import (
	"fmt"
	"log"

	v "github.com/Gobd/validatus"
)

// input is a stand-in for a UI text input that reports blur events.
type input struct {
	onBlur []func()
}

func (i *input) OnBlur(fn func()) { i.onBlur = append(i.onBlur, fn) }

func (i *input) Blur() {
	for _, fn := range i.onBlur {
		fn()
	}
}

func render(label string, st v.State) {
	fmt.Printf("%s %q valid=%v", label, st.Value, st.Valid)
	if st.TracksTouched {
		fmt.Printf(" touched=%v", st.Touched)
	}
	fmt.Println()
	for name, ok := range st.Validations.All() {
		if !ok && (!st.TracksTouched || st.Touched) {
			fmt.Printf("  - fails %s\n", name)
		}
	}
}

func main() {
	email, err := v.NewField("", []v.Descriptor{
		v.Is("isRequired"),
		v.Is("isEmail"),
		v.With("contains", "@gmail"),
		v.With("isLength", map[string]any{"min": 3, "max": 15}),
	})
	if err != nil {
		log.Fatal(err)
	}
	email.Subscribe(func(st v.State) { render("email", st) })
	_ = email.OnChange(v.Text("bob@gmail.com"))
	_ = email.OnChange(v.ChangeEvent{Value: "bob@yahoo.com"})

	text := &input{}
	touched, err := v.NewField("", []v.Descriptor{
		v.Is("isRequired"),
		v.Is("isAlpha"),
		v.With("contains", "valid"),
		v.With("isLength", v.LengthOptions{Min: 10, Max: v.Ptr(30)}),
	}, v.WithBlurSource(text))
	if err != nil {
		log.Fatal(err)
	}
	touched.Subscribe(func(st v.State) { render("text", st) })
	_ = touched.OnChange(v.Text("short"))
	text.Blur()
	_ = touched.OnChange(v.Text("reallyvalidtext"))

	number, err := v.NewField("not a number", []v.Descriptor{
		v.Is("isRequired"),
		v.With("isInt", map[string]any{"min": 10, "max": 99}),
	})
	if err != nil {
		log.Fatal(err)
	}
	render("number", number.State())
	_ = number.OnChange(v.Text("42"))
	render("number", number.State())

	url, err := v.NewField("", []v.Descriptor{
		v.With("isURL", map[string]any{
			"protocols":              []string{"http", "https"},
			"require_protocol":       true,
			"require_host":           true,
			"require_valid_protocol": true,
		}),
		v.With("isLength", map[string]any{"min": 10}),
	})
	if err != nil {
		log.Fatal(err)
	}
	_ = url.OnChange(v.Text("https://example.com/docs"))
	render("url", url.State())
}
