package repository

import (
	"context"
	"errors"
	"time"

	"remodel_calc/internal/domain/entities"
	"remodel_calc/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	DefaultProjectsTableName = "projects"
	projectsUserIDIndex      = "user_id-index"
)

type projectItem struct {
	ID           string                 `dynamodbav:"id"`
	UserID       string                 `dynamodbav:"user_id"`
	CustomerInfo entities.CustomerInfo  `dynamodbav:"customer_info"`
	Categories   []entities.Category    `dynamodbav:"categories"`
	Settings     entities.Settings      `dynamodbav:"settings"`
	Breakdown    entities.CostBreakdown `dynamodbav:"breakdown"`
	CreatedAt    string                 `dynamodbav:"created_at"`
	UpdatedAt    string                 `dynamodbav:"updated_at"`
}

// ProjectDynamoRepository persists Project aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (PK: user_id)
//
// Update and Delete are conditioned on the stored user_id, so a caller can
// never touch another user's project even with a known id.

type ProjectDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProjectRepository = (*ProjectDynamoRepository)(nil)

func NewProjectDynamoRepository(ddb *dynamodb.Client, tableName string) *ProjectDynamoRepository {
	if tableName == "" {
		tableName = DefaultProjectsTableName
	}
	return &ProjectDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
	}
}

func (r *ProjectDynamoRepository) Create(ctx context.Context, p entities.Project) (entities.Project, error) {
	av, err := attributevalue.MarshalMap(toProjectItem(p))
	if err != nil {
		return entities.Project{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Project{}, err
	}
	return p, nil
}

func (r *ProjectDynamoRepository) GetByID(ctx context.Context, id string) (entities.Project, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            projectKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Project{}, err
	}
	if len(out.Item) == 0 {
		return entities.Project{}, nil
	}

	var it projectItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Project{}, err
	}
	return fromProjectItem(it), nil
}

func (r *ProjectDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Project, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(projectsUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	}

	projects := make([]entities.Project, 0)
	paginator := dynamodb.NewQueryPaginator(r.ddb, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it projectItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			projects = append(projects, fromProjectItem(it))
		}
	}
	return projects, nil
}

// Update replaces the mutable parts of a project. created_at is preserved.
// A missing project, or one owned by another user, yields a zero Project.
func (r *ProjectDynamoRepository) Update(ctx context.Context, p entities.Project) (entities.Project, error) {
	it := toProjectItem(p)
	values, err := attributevalue.MarshalMap(map[string]any{
		":customer_info": it.CustomerInfo,
		":categories":    it.Categories,
		":settings":      it.Settings,
		":breakdown":     it.Breakdown,
		":updated_at":    it.UpdatedAt,
		":uid":           it.UserID,
	})
	if err != nil {
		return entities.Project{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 projectKey(p.ID),
		ConditionExpression: aws.String(ownedCondition),
		UpdateExpression: aws.String("SET #customer_info = :customer_info, #categories = :categories, " +
			"#settings = :settings, #breakdown = :breakdown, #updated_at = :updated_at"),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames: mergeNames(ownedNames, map[string]string{
			"#customer_info": "customer_info",
			"#categories":    "categories",
			"#settings":      "settings",
			"#breakdown":     "breakdown",
			"#updated_at":    "updated_at",
		}),
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Project{}, nil
		}
		return entities.Project{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Project{}, nil
	}
	var stored projectItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &stored); err != nil {
		return entities.Project{}, err
	}
	return fromProjectItem(stored), nil
}

// Delete reports false when nothing owned by userID was removed.
func (r *ProjectDynamoRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      projectKey(id),
		ConditionExpression:      aws.String(ownedCondition),
		ExpressionAttributeNames: ownedNames,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

const ownedCondition = "attribute_exists(#id) AND #user_id = :uid"

var ownedNames = map[string]string{
	"#id":      "id",
	"#user_id": "user_id",
}

func projectKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func isConditionFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return errors.As(err, &cfe)
}

func toProjectItem(p entities.Project) projectItem {
	return projectItem{
		ID:           p.ID,
		UserID:       p.UserID,
		CustomerInfo: p.CustomerInfo,
		Categories:   p.Categories,
		Settings:     p.Settings,
		Breakdown:    p.Breakdown,
		CreatedAt:    formatTime(p.CreatedAt),
		UpdatedAt:    formatTime(p.UpdatedAt),
	}
}

func fromProjectItem(it projectItem) entities.Project {
	return entities.Project{
		ID:           it.ID,
		UserID:       it.UserID,
		CustomerInfo: it.CustomerInfo,
		Categories:   it.Categories,
		Settings:     it.Settings,
		Breakdown:    it.Breakdown,
		CreatedAt:    parseTime(it.CreatedAt),
		UpdatedAt:    parseTime(it.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
