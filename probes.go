package idpkit

import (
	"context"
	"fmt"
)

// Capability probes. Each requires an authenticated adapter and reports
// Unavailable — not an error — when the provider does not implement the
// corresponding interface.

// Contacts fetches the user's contact list.
func (a *Adapter) Contacts(ctx context.Context) (Capability[[]Contact], error) {
	token, err := a.currentToken(ctx)
	if err != nil {
		return Unavailable[[]Contact](), err
	}

	p, ok := a.provider.(ContactsProvider)
	if !ok {
		return Unavailable[[]Contact](), nil
	}

	contacts, err := p.Contacts(ctx, token)
	if err != nil {
		return Unavailable[[]Contact](), fmt.Errorf("idpkit: fetch contacts: %w", err)
	}
	return Available(contacts), nil
}

// SetStatus publishes a status update, optionally on a page the user manages
// (empty pageID targets the user's own feed).
func (a *Adapter) SetStatus(ctx context.Context, status, pageID string) (Capability[Status], error) {
	token, err := a.currentToken(ctx)
	if err != nil {
		return Unavailable[Status](), err
	}

	p, ok := a.provider.(StatusWriter)
	if !ok {
		return Unavailable[Status](), nil
	}

	created, err := p.SetStatus(ctx, token, status, pageID)
	if err != nil {
		return Unavailable[Status](), fmt.Errorf("idpkit: set status: %w", err)
	}
	return Available(created), nil
}

// Status fetches a single status update by post id.
func (a *Adapter) Status(ctx context.Context, postID string) (Capability[Status], error) {
	token, err := a.currentToken(ctx)
	if err != nil {
		return Unavailable[Status](), err
	}

	p, ok := a.provider.(StatusReader)
	if !ok {
		return Unavailable[Status](), nil
	}

	status, err := p.Status(ctx, token, postID)
	if err != nil {
		return Unavailable[Status](), fmt.Errorf("idpkit: fetch status: %w", err)
	}
	return Available(status), nil
}

// Pages fetches the pages the user manages.
func (a *Adapter) Pages(ctx context.Context, writableOnly bool) (Capability[[]Page], error) {
	token, err := a.currentToken(ctx)
	if err != nil {
		return Unavailable[[]Page](), err
	}

	p, ok := a.provider.(PagesProvider)
	if !ok {
		return Unavailable[[]Page](), nil
	}

	pages, err := p.Pages(ctx, token, writableOnly)
	if err != nil {
		return Unavailable[[]Page](), fmt.Errorf("idpkit: fetch pages: %w", err)
	}
	return Available(pages), nil
}

// Activity fetches the user's latest activity for the given stream.
func (a *Adapter) Activity(ctx context.Context, stream ActivityStream) (Capability[[]Activity], error) {
	token, err := a.currentToken(ctx)
	if err != nil {
		return Unavailable[[]Activity](), err
	}

	p, ok := a.provider.(ActivityProvider)
	if !ok {
		return Unavailable[[]Activity](), nil
	}

	activity, err := p.Activity(ctx, token, stream)
	if err != nil {
		return Unavailable[[]Activity](), fmt.Errorf("idpkit: fetch activity: %w", err)
	}
	return Available(activity), nil
}
