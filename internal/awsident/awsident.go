package awsident

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/voglerr/eventplan/internal/ctxlog"
	"github.com/voglerr/eventplan/internal/resolve"
)

// Resolve fetches the caller's account, region, and partition from the
// ambient credential chain via STS.
func Resolve(ctx context.Context) (resolve.Identity, error) {
	logger := ctxlog.FromContext(ctx)

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return resolve.Identity{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	out, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return resolve.Identity{}, fmt.Errorf("failed to resolve caller identity: %w", err)
	}

	ident := resolve.Identity{
		Partition: "aws",
		Region:    cfg.Region,
		AccountID: aws.ToString(out.Account),
	}
	if parsed, err := arn.Parse(aws.ToString(out.Arn)); err == nil {
		ident.Partition = parsed.Partition
	}

	logger.Debug("Caller identity resolved.", "account", ident.AccountID, "region", ident.Region, "partition", ident.Partition)
	return ident, nil
}
