// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

import "slices"

// BlockMessenger hides matching sites from the messengers entered before
// it: a blocked site sets the stop flag, which cuts off the inward pass
// and, symmetrically, the outward pass of everything outside the blocker.
// With no options every site is blocked.
type BlockMessenger struct {
	BaseMessenger
	hide        []string
	expose      []string
	hideTypes   []MessageType
	exposeTypes []MessageType
	hideFn      func(*Message) bool
	exposeFn    func(*Message) bool
	hideAll     bool
}

// BlockOption configures a [BlockMessenger].
type BlockOption func(*BlockMessenger)

// Hide blocks the named sites.
func Hide(names ...string) BlockOption {
	return func(m *BlockMessenger) { m.hide = append(m.hide, names...) }
}

// Expose passes the named sites through while everything else stays blocked.
func Expose(names ...string) BlockOption {
	return func(m *BlockMessenger) { m.expose = append(m.expose, names...) }
}

// HideTypes blocks all sites of the given types.
func HideTypes(types ...MessageType) BlockOption {
	return func(m *BlockMessenger) { m.hideTypes = append(m.hideTypes, types...) }
}

// ExposeTypes passes all sites of the given types through.
func ExposeTypes(types ...MessageType) BlockOption {
	return func(m *BlockMessenger) { m.exposeTypes = append(m.exposeTypes, types...) }
}

// HideFn blocks sites for which fn returns true. Overrides every other
// predicate option.
func HideFn(fn func(*Message) bool) BlockOption {
	return func(m *BlockMessenger) { m.hideFn = fn }
}

// ExposeFn blocks sites for which fn returns false. Considered only when
// no HideFn is set.
func ExposeFn(fn func(*Message) bool) BlockOption {
	return func(m *BlockMessenger) { m.exposeFn = fn }
}

// Block returns a messenger hiding sites per the given options.
func Block(opts ...BlockOption) *BlockMessenger {
	m := &BlockMessenger{hideAll: true}
	for _, opt := range opts {
		opt(m)
	}
	// Naming sites to hide switches the default from hide-all to
	// pass-through for everything unnamed.
	if m.hideFn == nil && m.exposeFn == nil && (len(m.hide) > 0 || len(m.hideTypes) > 0) {
		m.hideAll = false
	}
	return m
}

func (m *BlockMessenger) hidden(msg *Message) bool {
	if m.hideFn != nil {
		return m.hideFn(msg)
	}
	if m.exposeFn != nil {
		return !m.exposeFn(msg)
	}
	if slices.Contains(m.hide, msg.Name) || slices.Contains(m.hideTypes, msg.Type) {
		return true
	}
	if slices.Contains(m.expose, msg.Name) || slices.Contains(m.exposeTypes, msg.Type) {
		return false
	}
	return m.hideAll
}

// Process implements [Messenger].
func (m *BlockMessenger) Process(msg *Message) error {
	if m.hidden(msg) {
		msg.Stop = true
	}
	return nil
}
