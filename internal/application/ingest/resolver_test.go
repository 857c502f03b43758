package ingest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reefet/reefet-api/internal/application/ingest"
	"github.com/reefet/reefet-api/internal/domain"
	"github.com/reefet/reefet-api/internal/domain/entity"
)

type fakeLookup struct {
	nodes  map[string]*entity.Node
	depots map[string]*entity.Depot
	err    error
}

func (f fakeLookup) GetByExternalCode(_ context.Context, code string) (*entity.Node, error) {
	return f.nodes[code], f.err
}

func (f fakeLookup) GetByNodeIdentifier(_ context.Context, tag string) (*entity.Depot, error) {
	return f.depots[tag], f.err
}

func newFakeLookup() fakeLookup {
	return fakeLookup{
		nodes:  map[string]*entity.Node{"N1": {ID: "node-1", ExternalCode: "N1", DepotID: "depot-1"}},
		depots: map[string]*entity.Depot{"TAG-1": {ID: "depot-1", NodeIdentifier: "TAG-1"}},
	}
}

func TestNewResolver(t *testing.T) {
	r, err := ingest.NewResolver("node")
	require.NoError(t, err)
	assert.Equal(t, ingest.StrategyNodeCode, r.Strategy())

	r, err = ingest.NewResolver("depot")
	require.NoError(t, err)
	assert.Equal(t, ingest.StrategyDepotTag, r.Strategy())

	_, err = ingest.NewResolver("mixta")
	assert.Error(t, err)
}

func TestResolvers(t *testing.T) {
	node1 := "node-1"
	cases := []struct {
		name     string
		resolver ingest.Resolver
		keys     ingest.Keys
		want     ingest.ResolvedRefs
		wantErr  error
	}{
		{"nodo encontrado", ingest.NodeCodeResolver{}, ingest.Keys{NodeCode: "N1"}, ingest.ResolvedRefs{NodeID: &node1, DepotID: "depot-1"}, nil},
		{"nodo inexistente", ingest.NodeCodeResolver{}, ingest.Keys{NodeCode: "N9"}, ingest.ResolvedRefs{}, domain.ErrNotFound},
		{"nodo sin código", ingest.NodeCodeResolver{}, ingest.Keys{DepotTag: "TAG-1"}, ingest.ResolvedRefs{}, domain.ErrValidation},
		{"tag encontrado", ingest.DepotTagResolver{}, ingest.Keys{DepotTag: "TAG-1"}, ingest.ResolvedRefs{DepotID: "depot-1"}, nil},
		{"tag inexistente", ingest.DepotTagResolver{}, ingest.Keys{DepotTag: "TAG-9"}, ingest.ResolvedRefs{}, domain.ErrNotFound},
		{"tag ausente", ingest.DepotTagResolver{}, ingest.Keys{NodeCode: "N1"}, ingest.ResolvedRefs{}, domain.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.resolver.Resolve(context.Background(), tc.keys, newFakeLookup())
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolver_MensajeNotFound(t *testing.T) {
	_, err := ingest.NodeCodeResolver{}.Resolve(context.Background(), ingest.Keys{NodeCode: "X"}, newFakeLookup())
	assert.Contains(t, err.Error(), "no hay nodo para el código X")

	_, err = ingest.DepotTagResolver{}.Resolve(context.Background(), ingest.Keys{DepotTag: "X"}, newFakeLookup())
	assert.Contains(t, err.Error(), "no hay depósito para el identificador X")
}

func TestResolver_ErrorDelStoreSePropaga(t *testing.T) {
	boom := errors.New("conexión perdida")
	l := newFakeLookup()
	l.err = boom
	_, err := ingest.NodeCodeResolver{}.Resolve(context.Background(), ingest.Keys{NodeCode: "N1"}, l)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
