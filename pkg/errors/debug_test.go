package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestDumpUnwrapsPgxError(t *testing.T) {
	cause := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "ux_parcelas_mercadopago_chave",
		TableName:      "parcelas",
		Detail:         "Key (cliente_id, valor_cents, data_pagamento) already exists.",
		Message:        "duplicate key value violates unique constraint",
	}
	err := Wrap(CodeConflict, fmt.Errorf("insert batch: %w", cause), "persist installments")

	d := Dump(err)
	if d.Code != CodeConflict {
		t.Fatalf("expected conflict code, got %s", d.Code)
	}
	if d.PGCode != "23505" || d.PGTable != "parcelas" {
		t.Fatalf("pg fields not extracted: %+v", d)
	}
	if d.SettlementOrigin != "mercadopago" {
		t.Fatalf("expected mercadopago origin for %s, got %q", d.PGConstraint, d.SettlementOrigin)
	}
	if len(d.Chain) < 3 {
		t.Fatalf("expected full unwrap chain, got %v", d.Chain)
	}
}

func TestDumpUnwrapsPqError(t *testing.T) {
	cause := &pq.Error{
		Code:       "23505",
		Constraint: "ux_pedidos_resumo_proposta",
		Table:      "pedidos_resumo",
	}
	d := Dump(fmt.Errorf("ensure summary: %w", cause))

	if d.PGConstraint != "ux_pedidos_resumo_proposta" {
		t.Fatalf("pq constraint not extracted: %+v", d)
	}
	if d.SettlementOrigin != "faturado" {
		t.Fatalf("expected faturado origin, got %q", d.SettlementOrigin)
	}
}

func TestDumpUnknownConstraintLeavesOriginEmpty(t *testing.T) {
	cause := &pgconn.PgError{Code: "23503", ConstraintName: "fk_parcelas_vendedor"}
	d := Dump(cause)
	if d.SettlementOrigin != "" {
		t.Fatalf("unexpected origin %q for foreign key violation", d.SettlementOrigin)
	}
}

func TestDumpPlainError(t *testing.T) {
	d := Dump(stdErrors.New("boom"))
	if d.TopMessage != "boom" || d.PGCode != "" {
		t.Fatalf("unexpected dump for plain error: %+v", d)
	}
	if Dump(nil).TopMessage != "" {
		t.Fatalf("nil error must dump empty")
	}
}
