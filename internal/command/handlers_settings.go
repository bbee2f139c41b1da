package command

import (
	"context"

	"github.com/aomurata/wordbridge/internal/apperr"
	"github.com/aomurata/wordbridge/internal/protocol"
	"github.com/aomurata/wordbridge/internal/store"
)

func settingsToWire(settings store.Settings) protocol.SettingsPayload {
	return protocol.SettingsPayload{
		Theme:                 settings.Theme,
		AutoPlayPronunciation: settings.AutoPlayPronunciation,
		ShowExampleSentences:  settings.ShowExampleSentences,
		TextSelectionMode:     settings.TextSelectionMode,
		AutoAddLookups:        settings.AutoAddLookups,
	}
}

func (d *Dispatcher) handleFetchSettings(ctx context.Context, req any) (any, error) {
	settings, err := d.stores.Settings.GetOrCreate(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return settingsToWire(settings), nil
}

func (d *Dispatcher) handleUpdateSettings(ctx context.Context, req any) (any, error) {
	request := req.(*protocol.UpdateSettingsRequest)

	settings, err := d.stores.Settings.GetOrCreate(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}

	patch := request.Settings
	if patch.Theme != nil {
		settings.Theme = *patch.Theme
	}
	if patch.AutoPlayPronunciation != nil {
		settings.AutoPlayPronunciation = *patch.AutoPlayPronunciation
	}
	if patch.ShowExampleSentences != nil {
		settings.ShowExampleSentences = *patch.ShowExampleSentences
	}
	if patch.TextSelectionMode != nil {
		settings.TextSelectionMode = *patch.TextSelectionMode
	}
	if patch.AutoAddLookups != nil {
		settings.AutoAddLookups = *patch.AutoAddLookups
	}

	if err := d.stores.Settings.Save(ctx, settings); err != nil {
		return nil, apperr.Store(err)
	}
	return settingsToWire(settings), nil
}
