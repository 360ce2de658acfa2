// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SpanMessenger emits one OpenTelemetry span per intercepted site, using
// whatever tracer provider is installed globally. It observes without
// transforming, so it composes anywhere on the stack; sites blocked before
// reaching it produce no span.
type SpanMessenger struct {
	BaseMessenger
	ctx    context.Context
	tracer trace.Tracer
	spans  map[*Message]trace.Span
}

// Span returns a messenger recording a span per site under ctx.
func Span(ctx context.Context) *SpanMessenger {
	return &SpanMessenger{
		ctx:    ctx,
		tracer: otel.Tracer("stoch"),
		spans:  make(map[*Message]trace.Span),
	}
}

// Process implements [Messenger].
func (m *SpanMessenger) Process(msg *Message) error {
	_, span := m.tracer.Start(m.ctx, msg.Name, trace.WithAttributes(
		attribute.String("site.name", msg.Name),
		attribute.String("site.type", string(msg.Type)),
	))
	m.spans[msg] = span
	return nil
}

// PostProcess implements [Messenger].
func (m *SpanMessenger) PostProcess(msg *Message) error {
	span, ok := m.spans[msg]
	if !ok {
		return nil
	}
	delete(m.spans, msg)
	span.SetAttributes(
		attribute.Bool("site.observed", msg.IsObserved),
		attribute.Bool("site.done", msg.Done),
		attribute.Float64("site.scale", msg.Scale),
	)
	span.End()
	return nil
}
