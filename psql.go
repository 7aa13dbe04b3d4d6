package stripekit

import (
	"database/sql"

	"github.com/andrewpillar/query"
)

// PSQL provides a way of storing the request ledger and webhook deliveries
// within PostgreSQL. Using this implementation of the Store interface would
// require having the following schema,
//
//	CREATE TABLE stripe_requests (
//	    id          SERIAL PRIMARY KEY,
//	    method      VARCHAR NOT NULL,
//	    path        VARCHAR NOT NULL,
//	    mode        VARCHAR NOT NULL,
//	    status      INT NOT NULL,
//	    error       VARCHAR NULL,
//	    started_at  TIMESTAMP NOT NULL,
//	    duration_ms BIGINT NOT NULL
//	);
//
//	CREATE TABLE stripe_events (
//	    id          VARCHAR NOT NULL UNIQUE,
//	    type        VARCHAR NOT NULL,
//	    mode        VARCHAR NOT NULL,
//	    received_at TIMESTAMP NOT NULL
//	);
type PSQL struct {
	*sql.DB
}

var (
	_ Store = (*PSQL)(nil)

	eventTable   = "stripe_events"
	requestTable = "stripe_requests"
)

// LogRequest will insert the given Call into the stripe_requests table.
func (p PSQL) LogRequest(c *Call) error {
	errmsg := sql.NullString{
		String: c.Err,
		Valid:  c.Err != "",
	}

	q := query.Insert(
		requestTable,
		query.Columns("method", "path", "mode", "status", "error", "started_at", "duration_ms"),
		query.Values(string(c.Method), c.Path, c.Mode.String(), c.StatusCode, errmsg, c.Started, c.Duration.Milliseconds()),
	)

	_, err := p.Exec(q.Build(), q.Args()...)
	return err
}

// LogDelivery will insert the given Delivery into the stripe_events table.
// The insert does nothing if the event ID is already in the table, in which
// case ErrEventExists is returned.
func (p PSQL) LogDelivery(d *Delivery) error {
	q := query.Insert(
		eventTable,
		query.Columns("id", "type", "mode", "received_at"),
		query.Values(d.ID, d.Type, d.Mode.String(), d.Received),
	)

	res, err := p.Exec(q.Build()+" ON CONFLICT (id) DO NOTHING", q.Args()...)

	if err != nil {
		return err
	}

	n, err := res.RowsAffected()

	if err != nil {
		return err
	}

	if n == 0 {
		return ErrEventExists
	}
	return nil
}
