package handler

import (
	"context"
	"time"

	"github.com/pr-poehali-dev/internal-employee-app/internal/errs"
	"github.com/pr-poehali-dev/internal-employee-app/internal/logger"
	"github.com/pr-poehali-dev/internal-employee-app/internal/model"
	"github.com/pr-poehali-dev/internal-employee-app/internal/validation"

	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// ActionFunc executes one routed action and returns the response payload.
type ActionFunc func(ctx context.Context, req *model.Request) (any, error)

// HandlerFunc is a typed action body. Req is normally a pointer so the
// pipeline can decode into it.
type HandlerFunc[Req validation.Validatable, Res any] func(ctx context.Context, req Req) (Res, error)

// handleRequest is the pipeline shared by every action: decode, validate,
// run, with timing in the logs and on the New Relic transaction.
func handleRequest[Req validation.Validatable](
	ctx context.Context,
	h *ActionHandler,
	name string,
	r *model.Request,
	req Req,
	handler func(ctx context.Context, req Req) (any, error),
) (any, error) {
	start := time.Now()

	txn := newrelic.FromContext(ctx)
	if txn != nil {
		txn.AddAttribute("handler.name", name)
	}

	log := logger.FromContext(ctx, h.logger).With().
		Str("operation", name).
		Logger()

	log.Debug().Msg("handling request")

	validationStart := time.Now()

	var body []byte
	var err error
	if ignorer, ok := any(req).(validation.BodyIgnorer); !ok || !ignorer.IgnoresBody() {
		body, err = r.BodyBytes()
	}
	if err == nil {
		err = validation.DecodeAndValidate(body, r.QueryStringParameters, req)
	} else {
		err = errs.NewBadRequestError("Invalid request body", nil, nil)
	}

	validationDuration := time.Since(validationStart)

	if err != nil {
		log.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}
		return nil, err
	}

	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := handler(ctx, req)
	handlerDuration := time.Since(handlerStart)
	totalDuration := time.Since(start)

	if err != nil {
		log.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return nil, err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
	}

	event := log.Info()
	if h.slowThreshold > 0 && handlerDuration >= h.slowThreshold {
		event = log.Warn().Bool("slow", true)
	}
	event.
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return result, nil
}

// Handle adapts a typed action body into an ActionFunc. newReq must return
// a fresh payload on every call.
//
//	Handle(h, "create_product", h.createProduct, func() *model.CreateProductRequest {
//		return &model.CreateProductRequest{}
//	})
func Handle[Req validation.Validatable, Res any](
	h *ActionHandler,
	name string,
	handler HandlerFunc[Req, Res],
	newReq func() Req,
) ActionFunc {
	return func(ctx context.Context, r *model.Request) (any, error) {
		return handleRequest(ctx, h, name, r, newReq(), func(ctx context.Context, req Req) (any, error) {
			return handler(ctx, req)
		})
	}
}
