package doctor

import (
	"context"

	"github.com/Freeeeeet/medislot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/medislot/internal/controller/state"
	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/Freeeeeet/medislot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Doctor: Patient Notes step
// ========================

// HandleSelectPatient открывает заметки выбранного пациента
func HandleSelectPatient(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withNotesStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		patientID, err := common.ParseIDFromCallback(callback.Data, keyboard.NotesPatientPrefix)
		if err != nil {
			common.HandleError(hc, err, "select_patient")
			return
		}

		patient, err := h.NoteService.Patient(patientID)
		if err != nil {
			common.HandleError(hc, err, "select_patient")
			return
		}

		hc.UpdateChat(func(d *state.ChatData) { d.NotePatientID = patient.ID })
		hc.Render()
		hc.Answer(patient.Name)
	})
}

// HandleAddNote просит ввести текст заметки для открытого пациента
func HandleAddNote(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withNotesStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		patientID := common.NotesPatient(h.NoteService, hc.Chat())
		patient, err := h.NoteService.Patient(patientID)
		if err != nil {
			common.HandleError(hc, err, "add_note")
			return
		}

		hc.UpdateChat(func(d *state.ChatData) {
			d.Dialog = state.StateEnteringNote
			d.NotePatientID = patient.ID
			if hc.Message != nil {
				d.ScreenMessageID = hc.Message.ID
			}
		})

		if err := hc.SendMessage(
			"📝 Send the note for <b>"+patient.Name+"</b>.\n\n/cancel to go back.",
			nil,
		); err != nil {
			common.HandleError(hc, err, "add_note")
			return
		}
		hc.Answer("")
	})
}

func notesStep(v service.View) error {
	return common.RequireStep(v, model.RoleDoctor, portal.KeyNotes)
}

// withNotesStep пропускает callback только на шаге заметок врача
func withNotesStep(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*common.HandlerContext),
) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := notesStep(h.PortalService.Snapshot(hc.Workspace)); err != nil {
			common.HandleError(hc, err, "notes_step")
			return
		}
		handler(hc)
	})
}
