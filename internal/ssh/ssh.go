// Package ssh runs commands on reserved bare-metal nodes over SSH.
// Testbed images ship with a well-known login user; connections go to
// the node's floating IP once the instance is reachable.
package ssh

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"path"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

// DefaultUser is the login account baked into the testbed base images.
const DefaultUser = "cc"

// Runner executes commands on a remote node.
type Runner interface {
	// Execute runs a command on the node and returns its combined output.
	// It retries the connection while the node is still booting.
	Execute(ctx context.Context, command string) (string, error)
	// Upload writes data to a file on the node.
	Upload(ctx context.Context, remotePath string, data []byte) error
}

// Remote is a Runner backed by the SSH protocol.
type Remote struct {
	host         string
	user         string
	privateKey   []byte
	dialAttempts int
	dialInterval time.Duration
}

// Option configures a Remote.
type Option func(*Remote)

// WithUser overrides the login user.
func WithUser(user string) Option {
	return func(r *Remote) { r.user = user }
}

// WithDialRetry overrides how often and how long to retry the initial
// connection. Nodes can take a while to finish cloud-init.
func WithDialRetry(attempts int, interval time.Duration) Option {
	return func(r *Remote) {
		r.dialAttempts = attempts
		r.dialInterval = interval
	}
}

// NewRemote creates a Runner for the node at host using key-based auth.
func NewRemote(host string, privateKey []byte, opts ...Option) *Remote {
	r := &Remote{
		host:         host,
		user:         DefaultUser,
		privateKey:   privateKey,
		dialAttempts: 10,
		dialInterval: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Remote) connect(ctx context.Context) (*ssh.Client, error) {
	signer, err := ssh.ParsePrivateKey(r.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	config := &ssh.ClientConfig{
		User: r.user,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // Nodes get fresh host keys on every reservation
		Timeout:         10 * time.Second,
	}

	addr := net.JoinHostPort(r.host, "22")
	var client *ssh.Client
	for i := 0; i < r.dialAttempts; i++ {
		client, err = ssh.Dial("tcp", addr, config)
		if err == nil {
			return client, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.dialInterval):
		}
	}
	return nil, fmt.Errorf("failed to dial ssh at %s: %w", addr, err)
}

func (r *Remote) Execute(ctx context.Context, command string) (string, error) {
	client, err := r.connect(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	output, err := session.CombinedOutput(command)
	if err != nil {
		return string(output), fmt.Errorf("failed to execute command: %w, output: %s", err, output)
	}

	return string(output), nil
}

// Upload streams data to remotePath through a shell on the node. The
// parent directory must already exist.
func (r *Remote) Upload(ctx context.Context, remotePath string, data []byte) error {
	client, err := r.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	session.Stdin = bytes.NewReader(data)
	cmd := fmt.Sprintf("cat > %s", shellQuote(path.Clean(remotePath)))
	if output, err := session.CombinedOutput(cmd); err != nil {
		return fmt.Errorf("failed to upload to %s: %w, output: %s", remotePath, err, output)
	}
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
