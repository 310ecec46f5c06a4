package config

import (
	"context"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ParameterLister is the part of the SSM client used to read a parameter tree
type ParameterLister interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// OverlaySSM copies every parameter under prefix into config, keyed by the last path segment.
// A parameter /portfolio/prod/RESEND_API_KEY becomes config["RESEND_API_KEY"].
// Values already set in the environment are kept.
func OverlaySSM(ctx context.Context, client ParameterLister, prefix string, config map[string]string) (int, error) {
	input := &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	}

	applied := 0
	paginator := ssm.NewGetParametersByPathPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return applied, err
		}

		for _, parameter := range page.Parameters {
			name := strings.TrimSpace(path.Base(aws.ToString(parameter.Name)))
			if name == "" || name == "." || name == "/" {
				continue
			}
			if existing, ok := config[name]; ok && existing != "" {
				log.Debug().Str("key", name).Msg("Environment overrides SSM parameter")
				continue
			}
			config[name] = aws.ToString(parameter.Value)
			applied++
		}
	}

	return applied, nil
}
