// Package directory adaptador HTTP del servicio de directorio corporativo (AD).
// El servicio expone dos endpoints POST con formulario urlencoded y responde XML.
package directory

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/jhoicas/Ideas-api/internal/application/ports"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/rs/zerolog"
)

var _ ports.DirectoryGateway = (*Client)(nil)

const (
	authenticatePath = "Autenticacion"
	attributesPath   = "DatosUsuarioAD"
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 1 << 20
)

// Client implementa DirectoryGateway.
type Client struct {
	baseURL    *url.URL // nil si AD_BASE_URL no está configurado o no es http(s)
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient construye el adaptador. Una URL vacía o inválida no impide arrancar:
// cada llamada devolverá domain.ErrDirectoryUnavailable.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
	if u, err := parseBaseURL(baseURL); err != nil {
		log.Warn().Err(err).Str("base_url", baseURL).Msg("directorio sin configurar")
	} else {
		c.baseURL = u
	}
	return c
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("AD_BASE_URL vacío")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("AD_BASE_URL debe usar http o https")
	}
	// los paths se resuelven relativos a la base
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// Authenticate valida credenciales; el servicio responde <boolean>true|false</boolean>.
func (c *Client) Authenticate(ctx context.Context, userName, password string) (bool, error) {
	doc, err := c.post(ctx, authenticatePath, url.Values{
		"NombreUsuario": {userName},
		"Password":      {password},
	})
	if err != nil {
		return false, err
	}
	el := findLocal(doc.Root(), "boolean")
	if el == nil {
		return false, nil
	}
	ok, err := strconv.ParseBool(strings.TrimSpace(el.Text()))
	return err == nil && ok, nil
}

// FetchAttributes obtiene CodigoEmpleado y NombreCompleto. Sin código = no encontrado.
func (c *Client) FetchAttributes(ctx context.Context, userName string) (*ports.DirectoryAttributes, error) {
	doc, err := c.post(ctx, attributesPath, url.Values{"NombreUsuario": {userName}})
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	code := ""
	if el := findLocal(root, "CodigoEmpleado"); el != nil {
		code = strings.TrimSpace(el.Text())
	}
	if code == "" {
		return nil, nil
	}
	name := ""
	if el := findLocal(root, "NombreCompleto"); el != nil {
		name = strings.TrimSpace(el.Text())
	}
	return &ports.DirectoryAttributes{EmployeeCode: code, FullName: name}, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values) (*etree.Document, error) {
	if c.baseURL == nil {
		return nil, fmt.Errorf("directorio: %w: URL base no configurada", domain.ErrDirectoryUnavailable)
	}
	endpoint := c.baseURL.ResolveReference(&url.URL{Path: path})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("directorio: %w: %w", domain.ErrDirectoryUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("endpoint", path).Msg("error llamando al directorio")
		return nil, fmt.Errorf("directorio %s: %w: %w", path, domain.ErrDirectoryUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("directorio %s: %w: leer respuesta: %w", path, domain.ErrDirectoryUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().Int("status", resp.StatusCode).Str("endpoint", path).Msg("respuesta no exitosa del directorio")
		return nil, fmt.Errorf("directorio %s: %w: status %d", path, domain.ErrDirectoryUnavailable, resp.StatusCode)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		c.log.Warn().Err(err).Str("endpoint", path).Msg("XML inválido del directorio")
		return nil, fmt.Errorf("directorio %s: %w: parsear XML: %w", path, domain.ErrDirectoryUnavailable, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("directorio %s: %w: documento sin raíz", path, domain.ErrDirectoryUnavailable)
	}
	return doc, nil
}

// findLocal busca en profundidad el primer elemento cuyo nombre local coincide
// sin distinguir mayúsculas (etree deja el prefijo en Space y el nombre en Tag).
func findLocal(el *etree.Element, local string) *etree.Element {
	if el == nil {
		return nil
	}
	if strings.EqualFold(el.Tag, local) {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := findLocal(child, local); found != nil {
			return found
		}
	}
	return nil
}
