package service

import (
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/ws"
)

// Publisher receives change events after a successful write.
type Publisher interface {
	Publish(ws.Event)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(ws.Event) {}

func changeEvent(resource, action string, rec model.Scoped, actor *model.Staff) ws.Event {
	t := rec.Tenant()
	e := ws.Event{
		Type:     ws.EventChange,
		Resource: resource,
		Action:   action,
		ID:       rec.GetID(),
		BrandID:  t.BrandID,
		OutletID: t.OutletID,
	}
	if actor != nil {
		e.StaffID = actor.ID
	}
	return e
}
