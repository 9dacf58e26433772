// Package policy builds the least-privilege access policy attached to a
// provisioned bucket's admin identity.
package policy

import (
	"encoding/json"
	"fmt"
)

// Version is the policy-language version understood by S3-compatible stores.
const Version = "2012-10-17"

// bucketActions is the complete action set granted by a bucket policy:
// object read, write and delete within the bucket, plus bucket-level
// listing. Anything beyond this list — account management, policy
// management, access to other buckets — is a privilege-escalation defect.
var bucketActions = []string{
	"s3:GetObject",
	"s3:PutObject",
	"s3:DeleteObject",
	"s3:ListBucket",
	"s3:GetBucketLocation",
}

// Statement is a single policy statement.
type Statement struct {
	Effect   string   `json:"Effect"`
	Action   []string `json:"Action"`
	Resource []string `json:"Resource"`
}

// Document is an S3-compatible access-policy document.
type Document struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// BuildBucketPolicy constructs the least-privilege policy for a single
// bucket. The resource scope is exactly the bucket and its objects; the
// action set is exactly bucketActions. The function is pure — bucket-name
// validation happens upstream before any policy is built.
func BuildBucketPolicy(bucket string) Document {
	return Document{
		Version: Version,
		Statement: []Statement{
			{
				Effect: "Allow",
				Action: append([]string(nil), bucketActions...),
				Resource: []string{
					fmt.Sprintf("arn:aws:s3:::%s", bucket),
					fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
				},
			},
		},
	}
}

// JSON renders the document as indented JSON, the format the external
// management client expects on disk.
func (d Document) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal policy document: %w", err)
	}
	return data, nil
}
