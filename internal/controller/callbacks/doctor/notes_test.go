package doctor

import (
	"testing"

	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/Freeeeeet/medislot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotesStepGuard(t *testing.T) {
	nav := portal.NewNavigator()
	at := func(role model.Role, index int) service.View {
		step, err := nav.Step(role, index)
		require.NoError(t, err)
		return service.View{Role: role, Authenticated: true, Step: step}
	}

	assert.NoError(t, notesStep(at(model.RoleDoctor, 4)))

	for _, v := range []service.View{
		at(model.RoleDoctor, 1),
		at(model.RoleDoctor, 3),
		at(model.RolePatient, 4),
		at(model.RoleAdmin, 4),
		{Role: model.RoleDoctor},
	} {
		assert.ErrorIs(t, notesStep(v), service.ErrForbidden, "%s step %d", v.Role, v.Step.Index)
	}
}
