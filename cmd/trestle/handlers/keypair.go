package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/trestle/internal/util/keygen"
)

// generateKeyPair is replaced in tests to avoid real key generation.
var generateKeyPair = keygen.GenerateED25519KeyPair

// KeypairCreate generates a fresh SSH key pair, registers the public half
// under name, and writes the private half to privateKeyPath.
func KeypairCreate(ctx context.Context, configPath, name, privateKeyPath string) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	pair, err := generateKeyPair()
	if err != nil {
		return err
	}

	kp, err := client.CreateKeyPair(ctx, name, string(pair.PublicKey))
	if err != nil {
		return fmt.Errorf("keypair registration failed: %w", err)
	}

	if privateKeyPath == "" {
		privateKeyPath = name + ".pem"
	}
	if err := os.WriteFile(privateKeyPath, pair.PrivateKey, 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	fmt.Printf("Keypair %s registered\n", kp.Name)
	fmt.Printf("Private key saved to: %s\n", privateKeyPath)
	return nil
}

// KeypairList prints the project's registered keypairs.
func KeypairList(ctx context.Context, configPath string) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	pairs, err := client.ListKeyPairs(ctx)
	if err != nil {
		return err
	}
	for _, kp := range pairs {
		fmt.Printf("%s  %s\n", kp.Name, kp.Fingerprint)
	}
	if len(pairs) == 0 {
		fmt.Println("(none)")
	}
	return nil
}

// KeypairDelete removes a registered keypair by name.
func KeypairDelete(ctx context.Context, configPath, name string) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	if err := client.DeleteKeyPair(ctx, name); err != nil {
		return err
	}
	fmt.Printf("Keypair %s deleted\n", name)
	return nil
}
