// internal/app/system/txn/txn.go
//
// Package txn runs multi-document writes in a MongoDB transaction when the
// deployment supports one, and falls back to running them sequentially on
// standalone servers.
package txn

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// unsupported latches once a server has refused a transaction so later
// calls skip the round trip.
var unsupported atomic.Bool

// Run executes fn inside a transaction on client. fn must use the context
// it is given so its operations join the session.
//
// If the server cannot run transactions, fn runs once more without one.
// The first attempt fails before writing anything in that case.
func Run(ctx context.Context, client *mongo.Client, log *zap.Logger, fn func(ctx context.Context) error) error {
	if client == nil || unsupported.Load() {
		return fn(ctx)
	}

	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			markUnsupported(log, err)
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		markUnsupported(log, err)
		return fn(ctx)
	}
	return err
}

func markUnsupported(log *zap.Logger, err error) {
	if unsupported.CompareAndSwap(false, true) && log != nil {
		log.Info("transactions unavailable; running multi-document writes without one", zap.Error(err))
	}
}

// IsNotSupported reports whether err says the server cannot run
// transactions (standalone mongod, unsupported DocumentDB features).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263: // IllegalOperation, NotSupported-in-txn variants
			return true
		}
	}

	s := strings.ToLower(err.Error())
	has := func(sub string) bool { return strings.Contains(s, sub) }

	switch {
	case has("transaction") && (has("replica set") || has("session")):
		return true
	case has("session") && has("not supported"):
		return true
	case has("illegal operation"):
		return true
	}
	return false
}
