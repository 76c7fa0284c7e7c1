package loam

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeenJaber1/automata-builder/internal/testutils"
	"github.com/LeenJaber1/automata-builder/pkg/domain"
	"github.com/LeenJaber1/automata-builder/pkg/ports/tests"
)

const evenZerosDoc = `---
type: DFA
alphabet: 0,1
states:
  - {id: 0, name: even, role: start}
  - {id: 1, name: odd}
transitions:
  - {from: 0, to: 1, label: "0"}
  - {from: 0, to: 0, label: "1"}
  - {from: 1, to: 0, label: "0"}
  - {from: 1, to: 1, label: "1"}
---
Binary strings with an even number of zeros.`

const epsilonDoc = `---
type: ε-NFA
states:
  - {id: 0, role: start}
  - {id: 1, role: accept}
transitions:
  - {from: {id: 0}, to: {id: 1}, label: ε}
---
`

func TestLoader_Contract(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, core.Document{ID: "even-zeros.md", Content: evenZerosDoc}))
	require.NoError(t, repo.Save(ctx, core.Document{ID: "epsilon.md", Content: epsilonDoc}))

	loader := New(loam.NewTypedRepository[AutomatonMetadata](repo))

	tests.LoaderContractTest(t, loader, map[string]*domain.Automaton{
		"even-zeros": {
			Kind:        domain.KindDFA,
			States:      make([]domain.State, 2),
			Transitions: make([]domain.Transition, 4),
		},
		"epsilon": {
			Kind:        domain.KindENFA,
			States:      make([]domain.State, 2),
			Transitions: make([]domain.Transition, 1),
		},
	})
}

func TestLoader_GetAutomaton_Decodes(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, core.Document{ID: "epsilon.md", Content: epsilonDoc}))

	loader := New(loam.NewTypedRepository[AutomatonMetadata](repo))
	a, err := loader.GetAutomaton(ctx, "epsilon")
	require.NoError(t, err)

	assert.Equal(t, []domain.Transition{{From: 0, To: 1, Label: domain.Epsilon}}, a.Transitions)
	assert.Equal(t, domain.RoleAccept, a.States[1].Role)
}

func TestLoader_ListAutomata_SkipsNotes(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"loop.json":  `{"type": "DFA", "alphabet": ["a"], "states": [{"id": 0, "role": "start"}], "transitions": [{"from": 0, "to": 0, "label": "a"}]}`,
		"ends-ab.md": "---\ntype: NFA\nstates:\n  - {id: 0, role: start}\ntransitions: []\n---\n",
		"README.md":  "---\ntitle: Library\n---\nNotes about the automata in this folder.",
	}
	for filename, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, filename), []byte(content), 0o644))
	}

	loader := New(loam.NewTypedRepository[AutomatonMetadata](repo))

	ids, err := loader.ListAutomata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ends-ab", "loop"}, ids)

	_, err = loader.GetAutomaton(context.Background(), "README")
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
}

func TestLoader_ListAutomata_DetectsCollisions(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"first.md":  "---\nid: same\nstates: [{id: 0}]\n---\n",
		"second.md": "---\nid: same\nstates: [{id: 0}]\n---\n",
	}
	for filename, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, filename), []byte(content), 0o644))
	}

	loader := New(loam.NewTypedRepository[AutomatonMetadata](repo))

	_, err := loader.ListAutomata(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}
