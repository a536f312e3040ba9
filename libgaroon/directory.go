package libgaroon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// ID is a Garoon object id. The API sends ids as JSON strings; numbers are accepted too.
type ID int64

// UnmarshalJSON accepts "123" and 123
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", s, err)
		}
		*id = ID(v)
		return nil
	}

	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(v)
	return nil
}

// String returns the decimal form used in URLs
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Entity is a user, facility or organization reference
type Entity struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// User represents a Garoon user
type User = Entity

// Facility represents a bookable facility (room, equipment)
type Facility = Entity

// Organization represents a node of the organization tree
type Organization struct {
	Entity
	ParentOrganization string `json:"parentOrganization,omitempty"`
	ChildOrganizations []ID   `json:"childOrganizations,omitempty"`
}

// UserList is the /base/users response
type UserList struct {
	Users   []*User `json:"users"`
	HasNext bool    `json:"hasNext"`
}

type wireOrganization struct {
	ID                 ID     `json:"id"`
	Name               string `json:"name"`
	Code               string `json:"code"`
	ParentOrganization *ID    `json:"parentOrganization"`
	ChildOrganizations []struct {
		ID ID `json:"id"`
	} `json:"childOrganizations"`
}

type organizationList struct {
	Organizations []wireOrganization `json:"organizations"`
	HasNext       bool               `json:"hasNext"`
}

func mapOrganization(w wireOrganization) *Organization {
	org := &Organization{
		Entity: Entity{ID: w.ID, Name: w.Name, Code: w.Code},
	}
	if w.ParentOrganization != nil && *w.ParentOrganization != 0 {
		org.ParentOrganization = w.ParentOrganization.String()
	}
	for _, child := range w.ChildOrganizations {
		org.ChildOrganizations = append(org.ChildOrganizations, child.ID)
	}
	return org
}

func pageParams(offset, limit int) url.Values {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	return params
}

// FetchUsersPage retrieves one page of users
func (c *Client) FetchUsersPage(ctx context.Context, offset, limit int) (Page[*User], error) {
	data, err := c.Get(ctx, "/base/users", pageParams(offset, limit))
	if err != nil {
		return Page[*User]{}, err
	}

	var list UserList
	if err := json.Unmarshal(data, &list); err != nil {
		return Page[*User]{}, fmt.Errorf("failed to unmarshal users: %w", err)
	}

	return Page[*User]{Items: list.Users, HasNext: list.HasNext}, nil
}

// FetchAllUsers pages through every user in the directory
func (c *Client) FetchAllUsers(ctx context.Context) ([]*User, error) {
	users, err := FetchAll(ctx, c.FetchUsersPage, PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

// FetchOrganizationsPage retrieves one page of organizations
func (c *Client) FetchOrganizationsPage(ctx context.Context, offset, limit int) (Page[*Organization], error) {
	data, err := c.Get(ctx, "/base/organizations", pageParams(offset, limit))
	if err != nil {
		return Page[*Organization]{}, err
	}

	var list organizationList
	if err := json.Unmarshal(data, &list); err != nil {
		return Page[*Organization]{}, fmt.Errorf("failed to unmarshal organizations: %w", err)
	}

	orgs := make([]*Organization, 0, len(list.Organizations))
	for _, w := range list.Organizations {
		orgs = append(orgs, mapOrganization(w))
	}

	return Page[*Organization]{Items: orgs, HasNext: list.HasNext}, nil
}

// FetchAllOrganizations pages through the whole organization tree
func (c *Client) FetchAllOrganizations(ctx context.Context) ([]*Organization, error) {
	orgs, err := FetchAll(ctx, c.FetchOrganizationsPage, PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch organizations: %w", err)
	}
	return orgs, nil
}
