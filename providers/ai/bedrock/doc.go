// Package bedrock implements the ai.Provider interface over the AWS Bedrock
// runtime InvokeModel API using the Anthropic messages body format. The caller
// supplies a configured bedrockruntime client; this package only handles the
// request/response translation.
package bedrock
