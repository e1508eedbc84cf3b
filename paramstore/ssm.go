package paramstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// GetParameterAPI is the part of the SSM client used by SSMStore.
type GetParameterAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SSMStore resolves parameters from AWS Systems Manager Parameter Store.
// Every Lookup is a single GetParameter call, no retries beyond the SDK's.
type SSMStore struct {
	client GetParameterAPI
}

func NewSSMStore(client GetParameterAPI) *SSMStore {
	return &SSMStore{client: client}
}

// NewSSMStoreFromDefaults builds the SSM client from the default AWS
// credential chain. region may be empty to use the chain's region.
func NewSSMStoreFromDefaults(ctx context.Context, region string) (*SSMStore, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewSSMStore(ssm.NewFromConfig(cfg)), nil
}

func (s *SSMStore) Lookup(ctx context.Context, name string, decrypt bool) (string, error) {
	out, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(decrypt),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return "", fmt.Errorf("get parameter %s: %w", name, err)
	}

	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return *out.Parameter.Value, nil
}
