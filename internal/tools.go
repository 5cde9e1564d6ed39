package internal

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrTooManyTries = errors.New("too many tries")

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func WithMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// Prompt writes prompt and reads one line of input, repeating until the
// validator (if any) accepts it.
func Prompt(rw io.ReadWriter, prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	tries := 0
	for {
		_, err := io.WriteString(rw, prompt)
		if err != nil {
			return "", err
		}

		input, err := ReadLine(rw)
		if err != nil {
			return "", err
		}

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				if _, err := io.WriteString(rw, msg); err != nil {
					return "", err
				}

				tries++
				if config.tries > 0 && config.tries == tries {
					return "", ErrTooManyTries
				}

				continue
			}
		}

		return input, nil
	}
}

// ReadLine reads up to and excluding the next newline. It reads a byte at a
// time so nothing past the line is consumed from the connection, leaving the
// rest for whoever reads next.
func ReadLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			switch buf[0] {
			case '\n':
				return strings.TrimRight(sb.String(), "\r"), nil
			default:
				sb.WriteByte(buf[0])
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
	}
}

// PromptYN asks a yes or no question. Dutch and English answers are accepted.
func PromptYN(rw io.ReadWriter, prompt string) (bool, error) {
	str, err := Prompt(rw, prompt, WithValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(strings.TrimSpace(str)) {
			case "y", "yes", "j", "ja", "n", "no", "nee":
				return true, ""
			default:
				return false, "Typ 'ja' of 'nee'.\n"
			}
		},
	))
	if err != nil {
		return false, fmt.Errorf("reading answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(str)) {
	case "y", "yes", "j", "ja":
		return true, nil
	default:
		return false, nil
	}
}
