// Package karabiner defines the complex-modification document consumed by
// Karabiner-Elements and the helpers to encode it.
package karabiner

import (
	"encoding/json"
	"strconv"

	"github.com/cockroachdb/errors"
)

// ErrInvalidValue is returned when decoding a variable value that is not a
// JSON number, string or boolean.
var ErrInvalidValue = errors.New("variable value must be a number or string")

// Config is the top-level karabiner.json document.
type Config struct {
	Global   Global    `json:"global"`
	Profiles []Profile `json:"profiles"`
}

// Global holds host-wide settings.
type Global struct {
	ShowInMenuBar bool `json:"show_in_menu_bar"`
}

// Profile is one named set of modifications.
type Profile struct {
	Name                 string               `json:"name"`
	ComplexModifications ComplexModifications `json:"complex_modifications"`
}

// ComplexModifications holds the ordered rules of a profile.
type ComplexModifications struct {
	Parameters *Parameters `json:"parameters,omitempty"`
	Rules      []Rule      `json:"rules"`
}

// Parameters are the basic.* timing knobs. They appear both profile-wide and
// on individual manipulators.
type Parameters struct {
	SimultaneousThresholdMilliseconds int `json:"basic.simultaneous_threshold_milliseconds,omitempty"`
	ToIfAloneTimeoutMilliseconds      int `json:"basic.to_if_alone_timeout_milliseconds,omitempty"`
	ToIfHeldDownThresholdMilliseconds int `json:"basic.to_if_held_down_threshold_milliseconds,omitempty"`
	ToDelayedActionDelayMilliseconds  int `json:"basic.to_delayed_action_delay_milliseconds,omitempty"`
}

// IsZero reports whether no parameter is set.
func (p *Parameters) IsZero() bool {
	return p == nil || *p == Parameters{}
}

// Rule is a described group of manipulators.
type Rule struct {
	Description  string        `json:"description"`
	Manipulators []Manipulator `json:"manipulators"`
}

// Manipulator is one fragment: a trigger, its guards and its resulting events.
type Manipulator struct {
	Type            string         `json:"type"`
	Description     string         `json:"description,omitempty"`
	From            From           `json:"from"`
	To              []ToEvent      `json:"to,omitempty"`
	ToIfAlone       []ToEvent      `json:"to_if_alone,omitempty"`
	ToIfHeldDown    []ToEvent      `json:"to_if_held_down,omitempty"`
	ToAfterKeyUp    []ToEvent      `json:"to_after_key_up,omitempty"`
	ToDelayedAction *DelayedAction `json:"to_delayed_action,omitempty"`
	Conditions      []Condition    `json:"conditions,omitempty"`
	Parameters      *Parameters    `json:"parameters,omitempty"`
}

// BasicType is the only manipulator type emitted.
const BasicType = "basic"

// From describes the physical trigger.
type From struct {
	KeyCode             string               `json:"key_code,omitempty"`
	ConsumerKeyCode     string               `json:"consumer_key_code,omitempty"`
	Simultaneous        []SimultaneousKey    `json:"simultaneous,omitempty"`
	SimultaneousOptions *SimultaneousOptions `json:"simultaneous_options,omitempty"`
	Modifiers           *FromModifiers       `json:"modifiers,omitempty"`
}

// SimultaneousKey is one member of a chord.
type SimultaneousKey struct {
	KeyCode string `json:"key_code"`
}

// SimultaneousOptions tunes chord detection.
type SimultaneousOptions struct {
	DetectKeyDownUninterruptedly *bool     `json:"detect_key_down_uninterruptedly,omitempty"`
	KeyDownOrder                 string    `json:"key_down_order,omitempty"`
	KeyUpOrder                   string    `json:"key_up_order,omitempty"`
	KeyUpWhen                    string    `json:"key_up_when,omitempty"`
	ToAfterKeyUp                 []ToEvent `json:"to_after_key_up,omitempty"`
}

// FromModifiers lists mandatory and optional modifiers of a trigger.
type FromModifiers struct {
	Mandatory []string `json:"mandatory,omitempty"`
	Optional  []string `json:"optional,omitempty"`
}

// ToEvent is one resulting event.
type ToEvent struct {
	KeyCode                string               `json:"key_code,omitempty"`
	ConsumerKeyCode        string               `json:"consumer_key_code,omitempty"`
	Modifiers              []string             `json:"modifiers,omitempty"`
	ShellCommand           string               `json:"shell_command,omitempty"`
	SetVariable            *SetVariable         `json:"set_variable,omitempty"`
	SetNotificationMessage *NotificationMessage `json:"set_notification_message,omitempty"`
	SoftwareFunction       *SoftwareFunction    `json:"software_function,omitempty"`
}

// SetVariable mutates a host variable. Type "unset" removes it.
type SetVariable struct {
	Name  string `json:"name"`
	Value *Value `json:"value,omitempty"`
	Type  string `json:"type,omitempty"`
}

// UnsetType marks a SetVariable that removes the variable.
const UnsetType = "unset"

// NotificationMessage shows (non-empty text) or clears (empty text) a
// notification identified by ID.
type NotificationMessage struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// SoftwareFunction wraps host-native actions.
type SoftwareFunction struct {
	OpenApplication *OpenApplication `json:"open_application,omitempty"`
}

// OpenApplication opens an app by bundle identifier or file path.
type OpenApplication struct {
	BundleIdentifier string `json:"bundle_identifier,omitempty"`
	FilePath         string `json:"file_path,omitempty"`
}

// DelayedAction fires ToIfInvoked when no other key arrives before the delay.
type DelayedAction struct {
	ToIfInvoked  []ToEvent `json:"to_if_invoked,omitempty"`
	ToIfCanceled []ToEvent `json:"to_if_canceled,omitempty"`
}

// Condition guards a manipulator.
type Condition struct {
	Type              string   `json:"type"`
	BundleIdentifiers []string `json:"bundle_identifiers,omitempty"`
	Name              string   `json:"name,omitempty"`
	Value             *Value   `json:"value,omitempty"`
	Description       string   `json:"description,omitempty"`
}

// Condition types.
const (
	FrontmostApplicationIf     = "frontmost_application_if"
	FrontmostApplicationUnless = "frontmost_application_unless"
	VariableIf                 = "variable_if"
	VariableUnless             = "variable_unless"
)

// Value is a variable value: the host accepts integers and strings.
type Value struct {
	str   string
	num   int
	isStr bool
}

// Int returns an integer value.
func Int(n int) Value { return Value{num: n} }

// String returns a string value.
func String(s string) Value { return Value{str: s, isStr: true} }

// Ptr returns a pointer to a copy of v, for use in wire structs.
func (v Value) Ptr() *Value { return &v }

// Equal reports whether v and o hold the same value.
func (v Value) Equal(o Value) bool { return v == o }

// IsString reports whether v holds a string.
func (v Value) IsString() bool { return v.isStr }

func (v Value) String() string {
	if v.isStr {
		return strconv.Quote(v.str)
	}
	return strconv.Itoa(v.num)
}

// MarshalJSON encodes v as a JSON number or string.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isStr {
		return json.Marshal(v.str)
	}
	return json.Marshal(v.num)
}

// UnmarshalJSON accepts a JSON number, string or boolean.
func (v *Value) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = String(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*v = Int(n)
		return nil
	}
	var t bool
	if err := json.Unmarshal(b, &t); err == nil {
		if t {
			*v = Int(1)
		} else {
			*v = Int(0)
		}
		return nil
	}
	return errors.Wrapf(ErrInvalidValue, "got %s", b)
}
