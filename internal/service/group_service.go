package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/devanshg/splitmate/internal/apperr"
	"github.com/devanshg/splitmate/internal/expense"
	"github.com/devanshg/splitmate/internal/models"
	"github.com/devanshg/splitmate/internal/storage"
)

// GroupService manages the group collaborator: the named member lists
// expenses are authorized against.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group. The creator's display name is always part
// of the member list.
func (s *GroupService) CreateGroup(ctx context.Context, user models.AuthUser, name string, members []string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validationf("group name is required")
	}

	trimmed := make([]string, 0, len(members)+1)
	seenCreator := false
	for _, m := range members {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if m == user.Name {
			seenCreator = true
		}
		trimmed = append(trimmed, m)
	}
	if !seenCreator {
		trimmed = append([]string{user.Name}, trimmed...)
	}

	group := &models.Group{
		Name:      name,
		Members:   trimmed,
		CreatedBy: user.ID,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "name", group.Name, "members_count", len(group.Members))
	return group, nil
}

// GetGroup retrieves a group. The caller must be a member.
func (s *GroupService) GetGroup(ctx context.Context, user models.AuthUser, id string) (*models.Group, error) {
	if err := validateID(id, "group"); err != nil {
		return nil, err
	}
	group, err := s.store.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !expense.NewRoster(group.Members).Contains(user.Name) {
		return nil, apperr.Authorizationf("not a group member")
	}
	return group, nil
}

// ListGroups returns every group the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, user models.AuthUser) ([]*models.Group, error) {
	return s.store.ListGroupsByMember(ctx, user.Name)
}

// AddMember appends a member name to the group. The caller must already
// be a member; adding an existing name is a no-op.
func (s *GroupService) AddMember(ctx context.Context, user models.AuthUser, groupID, name string) (*models.Group, error) {
	if err := validateID(groupID, "group"); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validationf("member name is required")
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !expense.NewRoster(group.Members).Contains(user.Name) {
		return nil, apperr.Authorizationf("not a group member")
	}

	if err := s.store.AddGroupMembers(ctx, groupID, []string{name}); err != nil {
		slog.Error("AddGroupMembers failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return s.store.GetGroup(ctx, groupID)
}

// DeleteGroup removes a group and all its expenses. The caller must be a
// member.
func (s *GroupService) DeleteGroup(ctx context.Context, user models.AuthUser, id string) error {
	if err := validateID(id, "group"); err != nil {
		return err
	}
	group, err := s.store.GetGroup(ctx, id)
	if err != nil {
		return err
	}
	if !expense.NewRoster(group.Members).Contains(user.Name) {
		return apperr.Authorizationf("not a group member")
	}

	if err := s.store.DeleteGroup(ctx, id); err != nil {
		slog.Error("DeleteGroup failed", "group_id", id, "error", err)
		return err
	}
	slog.Info("Group deleted", "group_id", id)
	return nil
}
