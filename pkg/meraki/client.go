// Package meraki provides a client for the Cisco Meraki Dashboard API v1.
// It covers the two endpoints the migration tool consumes: organization
// networks (for membership validation) and network clients (with
// startingAfter MAC-cursor pagination).
package meraki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the production Meraki Dashboard API endpoint.
const DefaultBaseURL = "https://api.meraki.com/api/v1"

// defaultPerPage is the maximum page size the clients endpoint accepts.
const defaultPerPage = 1000

// Network represents a Meraki network within an organization.
type Network struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client represents a client seen on a Meraki network.
// VLAN is nil when the upstream record carries no vlan attribute.
// A non-empty Switchport marks a wired client.
type Client struct {
	MAC         string `json:"mac"`
	VLAN        *int   `json:"vlan"`
	Switchport  string `json:"switchport"`
	Description string `json:"description"`
	IP          string `json:"ip"`
	LastSeen    string `json:"lastSeen"`
}

// APIClient is an HTTP client wrapper for the Meraki Dashboard API.
type APIClient struct {
	apiKey  string
	baseURL string
	perPage int
	client  *http.Client
}

// NewClient creates a new Meraki API client.
// An empty baseURL uses the production endpoint; perPage <= 0 uses the
// API maximum of 1000.
func NewClient(apiKey, baseURL string, perPage int) *APIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	return &APIClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		perPage: perPage,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// GetOrganizationNetworks retrieves the networks belonging to an organization.
func (m *APIClient) GetOrganizationNetworks(ctx context.Context, orgID string) ([]Network, error) {
	path := fmt.Sprintf("/organizations/%s/networks", orgID)
	body, err := m.doRequest(ctx, m.buildURL(path, nil))
	if err != nil {
		return nil, err
	}
	var nets []Network
	if err := json.Unmarshal(body, &nets); err != nil {
		return nil, fmt.Errorf("decoding networks response: %w", err)
	}
	return nets, nil
}

// GetNetworkClients retrieves all clients seen on a network within the given
// timespan (seconds), following startingAfter MAC-cursor pagination: after a
// full page, the MAC of the page's last record becomes the cursor for the
// next request. Retrieval stops on an empty page or a page shorter than the
// page size.
//
// The cursor assumes the upstream returns clients in a stable order between
// page fetches; a reorder mid-retrieval can skip or duplicate records across
// the page boundary. This matches the upstream API contract and is not
// compensated for here.
//
// onPage, when non-nil, is invoked with the size of each fetched page.
func (m *APIClient) GetNetworkClients(ctx context.Context, networkID string, timespan int, onPage func(count int)) ([]Client, error) {
	path := fmt.Sprintf("/networks/%s/clients", networkID)
	params := url.Values{
		"timespan": []string{strconv.Itoa(timespan)},
		"perPage":  []string{strconv.Itoa(m.perPage)},
	}

	var clients []Client
	for {
		body, err := m.doRequest(ctx, m.buildURL(path, params))
		if err != nil {
			return nil, err
		}
		var page []Client
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decoding clients response: %w", err)
		}
		if len(page) == 0 {
			break
		}
		clients = append(clients, page...)
		if onPage != nil {
			onPage(len(page))
		}
		if len(page) < m.perPage {
			break
		}
		// Last MAC of the page is the pagination cursor.
		params.Set("startingAfter", page[len(page)-1].MAC)
	}
	return clients, nil
}

// buildURL constructs a full API URL from a path and query parameters.
func (m *APIClient) buildURL(path string, params url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	base := m.baseURL + path
	if len(params) == 0 {
		return base
	}
	return base + "?" + params.Encode()
}

// doRequest executes a single GET request with the Meraki auth header.
// Any non-2xx response is returned as an error; there is no retry, so a
// failure aborts the whole retrieval.
func (m *APIClient) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Cisco-Meraki-API-Key", m.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("meraki API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
