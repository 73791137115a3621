package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// settlementIndexOrigins maps the dedup indexes guarding the installment
// table to the settlement source they protect. A unique violation on one of
// them means a concurrent run raced on that source, not data corruption.
var settlementIndexOrigins = map[string]string{
	"ux_parcelas_proposta_numero":   "faturado",
	"ux_parcelas_mercadopago_chave": "mercadopago",
	"ux_parcelas_online_chave":      "online",
	"ux_pedidos_resumo_proposta":    "faturado",
}

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	PGCode       string `json:"pg_code,omitempty"`
	PGConstraint string `json:"pg_constraint,omitempty"`
	PGTable      string `json:"pg_table,omitempty"`
	PGColumn     string `json:"pg_column,omitempty"`
	PGDetail     string `json:"pg_detail,omitempty"`
	PGMessage    string `json:"pg_message,omitempty"`

	// SettlementOrigin is set when the violated constraint is one of the
	// settlement dedup indexes, naming the source pipeline that raced.
	SettlementOrigin string `json:"settlement_origem,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		d.PGCode = pgxErr.Code
		d.PGConstraint = pgxErr.ConstraintName
		d.PGTable = pgxErr.TableName
		d.PGColumn = pgxErr.ColumnName
		d.PGDetail = pgxErr.Detail
		d.PGMessage = pgxErr.Message
		d.SettlementOrigin = settlementIndexOrigins[pgxErr.ConstraintName]
		return d
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		d.PGCode = string(pqErr.Code)
		d.PGConstraint = pqErr.Constraint
		d.PGTable = pqErr.Table
		d.PGColumn = pqErr.Column
		d.PGDetail = pqErr.Detail
		d.PGMessage = pqErr.Message
		d.SettlementOrigin = settlementIndexOrigins[pqErr.Constraint]
		return d
	}

	return d
}
