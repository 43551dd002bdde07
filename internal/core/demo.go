package core

// Demo export shown when a user has not uploaded data or connected a CRM.
// It goes through the same pipeline as real uploads.

const demoContactsCSV = `Record ID,First Name,Last Name,Email,Company Name,Job Title,Industry,Company Size,Engagement Score,Intent Score,Priority,Lifecycle Stage,Contact Owner,Intent Signals
1001,Maya,Chen,maya.chen@northwind.io,Northwind Labs,VP Marketing,Software,201-500,88,34,high,opportunity,Jordan Blake,pricing_page|2024-05-02T14:10:00Z|12;demo_request|2024-05-03T09:00:00Z|20
1002,Luis,Ortega,lortega@northwind.io,Northwind Labs,Marketing Manager,Software,201-500,64,18,medium,salesqualifiedlead,Jordan Blake,webinar|2024-05-01|9;case_study|2024-05-04|6
1003,Priya,Nair,priya@helixhealth.com,Helix Health,Director of Operations,Healthcare,1001-5000,71,22,high,marketingqualifiedlead,Sam Rivera,pricing_page|2024-04-28|14
1004,Tom,Becker,tbecker@helixhealth.com,Helix Health,IT Manager,Healthcare,1001-5000,35,7,low,lead,Sam Rivera,blog_visit|2024-04-20|3
1005,Aisha,Bello,aisha@quarrymetrics.com,Quarry Metrics,CEO,Analytics,11-50,92,41,high,customer,Jordan Blake,contract_view|2024-05-06|25
1006,Ben,Ward,ben.ward@quarrymetrics.com,Quarry Metrics,Marketing Manager,Analytics,11-50,48,12,medium,lead,,webinar|2024-05-02|8
1007,Chloe,Dubois,chloe@atlasfreight.eu,Atlas Freight,Head of Logistics,Transportation,501-1000,22,4,low,subscriber,Alex Kim,
1008,Noah,Fischer,nfischer@atlasfreight.eu,Atlas Freight,VP Marketing,Transportation,501-1000,57,15,medium,marketingqualifiedlead,Alex Kim,pricing_page|2024-05-05|10
1009,Grace,Hopper,grace@cobaltsec.com,Cobalt Security,CTO,Cybersecurity,51-200,80,27,high,opportunity,Sam Rivera,"security_review|2024-05-07|18;integration_docs|2024-05-07|9"
1010,Omar,Haddad,omar@cobaltsec.com,Cobalt Security,Security Engineer,Cybersecurity,51-200,30,9,low,lead,,blog_visit|2024-05-01|2
1011,Emma,Stone,emma@brightpath.edu,Brightpath Learning,Marketing Manager,Education,201-500,41,11,medium,salesqualifiedlead,Alex Kim,webinar|2024-04-30|7
1012,Kenji,Sato,kenji@brightpath.edu,Brightpath Learning,IT Manager,Education,201-500,18,3,low,,Jordan Blake,
`

const demoDealsCSV = `Deal ID,Deal Name,Associated Company,Deal Stage,Amount,Close Date
D-501,Northwind Platform Expansion,Northwind Labs,contractsent,"$48,000",2024-06-30
D-502,Northwind Analytics Add-on,Northwind Labs,closedwon,"$12,500",2024-03-15
D-503,Helix Pilot,Helix Health,qualifiedtobuy,"$30,000",2024-07-15
D-504,Quarry Renewal,Quarry Metrics,closedwon,"$18,000",2024-02-01
D-505,Atlas Freight Evaluation,Atlas Freight,closedlost,"$22,000",2024-04-10
D-506,Cobalt Security Suite,Cobalt Security,presentationscheduled,"$64,000",2024-08-01
D-507,Cobalt Training Package,Cobalt Security,closedwon,"$6,000",2024-01-20
`
